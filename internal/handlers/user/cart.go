package user

import (
	"errors"
	"net/http"

	"novamart_back_end/internal/cart"
	"novamart_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// CartSync est le synchroniseur de paniers, câblé au démarrage du serveur.
//
// Chaque mutation répond avec la liste complète des lignes après application :
// le front remplace intégralement son miroir local par cette réponse, ce qui
// élimine toute dérive entre onglets.
var CartSync *cart.Synchronizer

//
// 🛒 GET /cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := CartSync.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

//
// 🟢 POST /cart — ajout avec fusion additive par produit
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string   `json:"productId"`
		Quantity  *int     `json:"quantity"`
		Price     *float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	// Quantité absente : la politique configurée décide (rejet ou 1)
	quantity := 0
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	price := 0.0
	if input.Price != nil {
		price = *input.Price
	}

	items, err := CartSync.Upsert(c.Request.Context(), userID, input.ProductID, quantity, price)
	if err != nil {
		if errors.Is(err, cart.ErrMissingProduct) || errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   items,
	})
}

//
// 🔁 PUT /cart/:productId — remplace la quantité (pas d'addition)
//
func SetCartQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	items, err := CartSync.SetQuantity(c.Request.Context(), userID, productID, input.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrMissingProduct) || errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantité mise à jour",
		"items":   items,
	})
}

//
// ❌ DELETE /cart/:productId — no-op si le produit n'y est pas
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	items, err := CartSync.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   items,
	})
}

//
// 🧹 DELETE /cart — vidage atomique
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := CartSync.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
		"items":   []models.CartItem{},
	})
}
