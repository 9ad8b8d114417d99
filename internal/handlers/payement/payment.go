package payement

import (
	"encoding/json"
	"log"
	"net/http"

	"novamart_back_end/internal/cart"
	"novamart_back_end/internal/models"
	"novamart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// CartSync est câblé au démarrage, comme celui des handlers utilisateur.
var CartSync *cart.Synchronizer

// Consumed est câblé au démarrage (Redis) ; les tests injectent la version mémoire.
var Consumed ConsumedIntents

// ✅ POST /checkout — crée un PaymentIntent Stripe sur le total du panier
// Le montant est toujours recalculé côté serveur, jamais repris du client.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	items, err := CartSync.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture panier"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Panier vide"})
		return
	}

	total := cart.Total(items)

	// Le panier voyage dans les métadonnées Stripe : la vérification le
	// retrouve sans dépendre de l'état local
	cartJSON, err := json.Marshal(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur sérialisation panier"})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(total * 100)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id": userID,
			"email":   email,
			"cart":    string(cartJSON),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création paiement"})
		return
	}

	log.Printf("💳 PaymentIntent créé : %s (%.2f€) pour %s", intent.ID, total, email)

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"paymentId":    intent.ID,
		"amount":       total,
		"currency":     "eur",
		"itemsCount":   len(items),
	})
}

// ✅ POST /verify-payment — vérifie l'état du paiement auprès de Stripe
// Paiement confirmé → panier vidé + email de confirmation de commande.
func VerifyPayment(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	var input struct {
		PaymentID string `json:"paymentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.PaymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "paymentId requis"})
		return
	}

	intent, err := paymentintent.Get(input.PaymentID, nil)
	if err != nil {
		log.Printf("❌ Vérification paiement %s échouée: %v", input.PaymentID, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Vérification du paiement échouée"})
		return
	}

	// Le paiement doit appartenir à l'utilisateur authentifié
	if intent.Metadata["user_id"] != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Paiement non autorisé"})
		return
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Paiement non confirmé",
			"status":  intent.Status,
		})
		return
	}

	// Rejeu d'un paiement déjà confirmé → pas de second vidage ni d'e-mail
	if Consumed != nil {
		first, err := Consumed.MarkConsumed(c.Request.Context(), intent.ID)
		if err != nil {
			log.Printf("⚠️ Erreur marquage paiement %s: %v", intent.ID, err)
		} else if !first {
			c.JSON(http.StatusOK, gin.H{
				"message": "Paiement déjà confirmé",
				"status":  intent.Status,
			})
			return
		}
	}

	if err := CartSync.Clear(c.Request.Context(), userID); err != nil {
		log.Printf("⚠️ Erreur vidage panier après paiement: %v", err)
	}

	var paidItems []models.CartItem
	if err := json.Unmarshal([]byte(intent.Metadata["cart"]), &paidItems); err == nil && len(paidItems) > 0 {
		go sendOrderConfirmationEmail(email, paidItems, float64(intent.Amount)/100)
	}

	log.Printf("💰 Paiement confirmé : %s (%s)", intent.ID, email)

	c.JSON(http.StatusOK, gin.H{
		"message": "Paiement confirmé",
		"status":  intent.Status,
	})
}

func sendOrderConfirmationEmail(email string, items []models.CartItem, total float64) {
	subject := "Confirmation de votre commande NovaMart"
	htmlBody := utils.OrderConfirmationHTML(items, total)

	if err := utils.SendEmail(email, subject, htmlBody); err != nil {
		log.Printf("❌ Erreur envoi email confirmation à %s: %v", email, err)
	} else {
		log.Printf("✅ Email de confirmation envoyé à %s", email)
	}
}
