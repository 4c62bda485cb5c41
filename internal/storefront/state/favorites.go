package state

import (
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

func toggleFavorite(s State, a ToggleFavorite) (State, Result) {
	if i := indexOfProduct(s.Favorites, a.Product.ID); i >= 0 {
		removed := s.Favorites[i]
		s.Favorites = removeProductAt(s.Favorites, i)
		return s, favoriteResult(FavoriteRemoved, removed, "%s removed from favorites")
	}

	s.Favorites = append(cloneProducts(s.Favorites), a.Product.Clone())
	return s, favoriteResult(FavoriteAdded, a.Product, "%s added to favorites")
}

func removeFavorite(s State, a RemoveFavorite) (State, Result) {
	i := indexOfProduct(s.Favorites, a.ProductID)
	if i < 0 {
		return s, Result{}
	}

	removed := s.Favorites[i]
	s.Favorites = removeProductAt(s.Favorites, i)
	return s, favoriteResult(FavoriteRemoved, removed, "%s removed from favorites")
}

func favoriteResult(kind NotificationKind, p domain.Product, format string) Result {
	return Result{
		FavoritesChanged: true,
		Notifications: []Notification{{
			Kind:      kind,
			ProductID: p.ID,
			Message:   fmt.Sprintf(format, p.Name),
		}},
	}
}

func removeProductAt(products []domain.Product, i int) []domain.Product {
	out := make([]domain.Product, 0, len(products)-1)
	out = append(out, products[:i]...)
	return append(out, products[i+1:]...)
}

func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}
