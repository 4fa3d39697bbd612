package breed

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/dogs/internal/domain/result"
	dogssvc "github.com/alanyang/dogs/internal/service/dogs"
)

// MaxImageCount is the largest count dog.ceo serves in one request.
const MaxImageCount = 50

func Register(rg *gin.RouterGroup, svc *dogssvc.Service) {
	rg.GET("", listBreeds(svc))
	rg.GET("/:id/images", breedImages(svc))
}

func listBreeds(svc *dogssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		WriteResult(c, svc.FetchBreedList(c.Request.Context()))
	}
}

func breedImages(svc *dogssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		count := 0
		if v := c.Query("count"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > MaxImageCount {
				c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 50"})
				return
			}
			count = n
		}

		WriteResult(c, svc.FetchBreedDetailN(c.Request.Context(), id, count))
	}
}

// WriteResult maps a fetch outcome onto an HTTP response: 200 with the data,
// 204 when upstream had nothing, 502 with the failure descriptor.
func WriteResult[T any](c *gin.Context, r result.Result[T]) {
	switch r.Kind {
	case result.KindSuccess:
		c.JSON(http.StatusOK, gin.H{"data": r.Data})
	case result.KindFailure:
		c.JSON(http.StatusBadGateway, gin.H{"error": r.Error})
	default:
		c.Status(http.StatusNoContent)
	}
}
