package spoonacular

// Recipe is a search result entry. Complex search and find-by-ingredients
// return different supersets; the unused fields stay zero.
type Recipe struct {
	ID                    int64  `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	ReadyInMinutes        int    `json:"readyInMinutes,omitempty"`
	Servings              int    `json:"servings,omitempty"`
	UsedIngredientCount   int    `json:"usedIngredientCount,omitempty"`
	MissedIngredientCount int    `json:"missedIngredientCount,omitempty"`
	Likes                 int    `json:"likes,omitempty"`
}

// RecipeInfo is the full recipe detail payload.
type RecipeInfo struct {
	ID                  int64        `json:"id"`
	Title               string       `json:"title"`
	Image               string       `json:"image"`
	Summary             string       `json:"summary"`
	SourceURL           string       `json:"sourceUrl"`
	ReadyInMinutes      int          `json:"readyInMinutes"`
	Servings            int          `json:"servings"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`
}

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
}

// Substitutes is the ingredient-substitutes payload.
type Substitutes struct {
	Ingredient  string   `json:"ingredient"`
	Substitutes []string `json:"substitutes"`
	Message     string   `json:"message"`
}

// Credentials is the per-user account pair issued by the connect endpoint,
// required for shopping-list operations.
type Credentials struct {
	Username string
	Hash     string
}

// ConnectUserRequest registers a user with the meal planner.
type ConnectUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Aisle groups shopping-list items the way the API returns them.
type Aisle struct {
	Aisle string     `json:"aisle"`
	Items []ListItem `json:"items"`
}

// ListItem is one shopping-list entry.
type ListItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type complexSearchResponse struct {
	Results []Recipe `json:"results"`
}

type connectUserResponse struct {
	Username string `json:"username"`
	Hash     string `json:"hash"`
}

type shoppingListResponse struct {
	Aisles []Aisle `json:"aisles"`
}

type addItemRequest struct {
	Item  string `json:"item"`
	Parse bool   `json:"parse"`
}
