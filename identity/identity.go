package identity

import "github.com/gin-gonic/gin"

// Provider resolves the cart owner for a request. There is no real
// authentication yet; the interface is the seam where one plugs in.
type Provider interface {
	CurrentOwner(c *gin.Context) string
}

// StaticProvider always returns the same owner id. Stands in for an
// authenticated identity until auth lands.
type StaticProvider struct {
	Owner string
}

func (p StaticProvider) CurrentOwner(_ *gin.Context) string {
	return p.Owner
}
