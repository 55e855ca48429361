package handlers

import (
	"net/http"

	"hrops-gateway/internal/dp"

	"github.com/gin-gonic/gin"
)

// GetDPSnapshot handles GET /api/dp/snapshot
// Optional query params: competencia, area, status ("Todas" matches everything).
func GetDPSnapshot(c *gin.Context) {
	snap := dp.Current()
	items, total := snap.FilterPJ(dp.Filter{
		Competence: c.Query("competencia"),
		Area:       c.Query("area"),
		Status:     c.Query("status"),
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"data": snap,
		"pj": gin.H{
			"itens": items,
			"total": total,
		},
		"rescisaoTotal": snap.Termination.Current.NetTotal(),
	})
}
