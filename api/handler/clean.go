package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/linkextract/cache"
	"github.com/use-agent/linkextract/cleaner"
	"github.com/use-agent/linkextract/fetcher"
	"github.com/use-agent/linkextract/models"
)

// Clean returns a handler for POST /api/v1/clean.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Fetcher.Get → raw HTML                (records fetch_ms)
//  3. Cleaner.Clean → markdown/html/text    (records parse_ms)
//  4. Fill StatusCode + Timing, return 200.
func Clean(f *fetcher.Fetcher, cl *cleaner.Cleaner, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.CleanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.CleanResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		cacheKey := cache.Key(req.URL, "clean", req.OutputFormat, req.ExtractMode, req.CSSSelector)
		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				resp := cached.(*models.CleanResponse)
				resp.CacheStatus = "hit"
				resp.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, resp)
				return
			}
		}

		fetchStart := time.Now()
		page, err := f.Get(c.Request.Context(), req.URL, nil)
		fetchMs := time.Since(fetchStart).Milliseconds()

		if err != nil {
			respondCleanError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
				FetchMs: fetchMs,
			})
			return
		}

		parseStart := time.Now()
		resp, err := cl.Clean(page.Body, req.URL, req.OutputFormat, req.ExtractMode, cleaner.CleanOptions{
			CSSSelector: req.CSSSelector,
			IncludeTags: req.IncludeTags,
			ExcludeTags: req.ExcludeTags,
		})
		parseMs := time.Since(parseStart).Milliseconds()

		if err != nil {
			respondCleanError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
				FetchMs: fetchMs,
				ParseMs: parseMs,
			})
			return
		}

		resp.StatusCode = page.StatusCode
		resp.Timing = models.TimingInfo{
			TotalMs: time.Since(totalStart).Milliseconds(),
			FetchMs: fetchMs,
			ParseMs: parseMs,
		}

		if cc != nil && req.MaxAge > 0 {
			cc.Set(cacheKey, resp)
			resp.CacheStatus = "miss"
		}

		c.JSON(http.StatusOK, resp)
	}
}

// respondCleanError mirrors respondError for the clean response shape.
func respondCleanError(c *gin.Context, err error, timing models.TimingInfo) {
	extractErr := models.AsExtractError(err)

	c.JSON(mapErrorToStatus(extractErr), models.CleanResponse{
		Success: false,
		Error:   extractErr.ToDetail(),
		Timing:  timing,
	})
}
