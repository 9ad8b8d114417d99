package cart

import (
	"context"
	"errors"
	"sync"

	"novamart_back_end/internal/models"
)

// Erreurs renvoyées par le synchroniseur, traduites en 400 par les handlers.
var (
	ErrMissingProduct  = errors.New("identifiant produit requis")
	ErrInvalidQuantity = errors.New("quantité invalide")
)

// MissingQuantityPolicy décide du sort d'un ajout sans quantité explicite.
type MissingQuantityPolicy int

const (
	// RejectMissingQuantity refuse l'ajout (comportement par défaut).
	RejectMissingQuantity MissingQuantityPolicy = iota
	// DefaultToOne traite une quantité absente comme 1.
	DefaultToOne
)

// PolicyFromString mappe la valeur de configuration CART_MISSING_QUANTITY.
func PolicyFromString(s string) MissingQuantityPolicy {
	if s == "default_one" {
		return DefaultToOne
	}
	return RejectMissingQuantity
}

// Synchronizer applique les mutations de panier avec la sémantique de fusion
// par identifiant produit : au plus une ligne par produit, ajout = somme des
// quantités (volontairement non idempotent), prix figé au premier ajout.
//
// Chaque mutation est un lire-modifier-écrire sur le document du panier ;
// un verrou par utilisateur sérialise les mutations concurrentes d'un même
// panier sans jamais bloquer les autres utilisateurs.
type Synchronizer struct {
	store  Store
	policy MissingQuantityPolicy

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSynchronizer(store Store, policy MissingQuantityPolicy) *Synchronizer {
	return &Synchronizer{
		store:  store,
		policy: policy,
		locks:  make(map[string]*sync.Mutex),
	}
}

// userLock retourne le verrou dédié à un utilisateur, créé au premier accès.
func (s *Synchronizer) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Get retourne le panier courant ([] si l'utilisateur n'en a pas encore).
func (s *Synchronizer) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	items, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// Upsert ajoute quantity au produit s'il est déjà dans le panier (fusion
// additive), sinon l'ajoute avec le prix fourni. quantity == 0 signifie
// "quantité absente" et suit la politique configurée.
func (s *Synchronizer) Upsert(ctx context.Context, userID, productID string, quantity int, price float64) ([]models.CartItem, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}
	if quantity == 0 && s.policy == DefaultToOne {
		quantity = 1
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if price < 0 {
		price = 0
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     price,
		})
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetQuantity remplace la quantité de la ligne correspondante. Si le produit
// n'est pas dans le panier, c'est un no-op qui retourne le panier inchangé.
func (s *Synchronizer) SetQuantity(ctx context.Context, userID, productID string, quantity int) ([]models.CartItem, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			if err := s.store.Save(ctx, userID, items); err != nil {
				return nil, err
			}
			break
		}
	}
	return items, nil
}

// Remove retire la ligne du produit ; no-op si elle n'existe pas.
func (s *Synchronizer) Remove(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := []models.CartItem{}
	removed := false
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		} else {
			removed = true
		}
	}

	// Rien retiré → rien à écrire (et surtout pas un document vide
	// pour un utilisateur qui n'a jamais eu de panier)
	if !removed {
		return kept, nil
	}

	if err := s.store.Save(ctx, userID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear vide le panier d'un seul coup (suppression du document).
func (s *Synchronizer) Clear(ctx context.Context, userID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.store.Delete(ctx, userID)
}

// Total calcule le montant du panier (prix unitaire × quantité).
func Total(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
