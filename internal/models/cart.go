package models

// Les tags JSON suivent le format attendu par le front (productId, quantity,
// price), qui renvoie tel quel ce que le serveur lui répond.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // prix unitaire figé au moment de l'ajout
}
