package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobcrawl/internal/config"
	"jobcrawl/internal/crawler"
	"jobcrawl/internal/logging"
	"jobcrawl/internal/query"
	"jobcrawl/pkg/models"
	"jobcrawl/pkg/utils"
)

var validate = validator.New()

// newQuery builds a query from a preset name and applies the caller's field
// values as one batch.
func newQuery(preset string, fields map[string]any) (*query.Query, error) {
	var q *query.Query
	var err error

	switch preset {
	case "simple":
		q, err = query.NewSimpleSearch()
	case "advanced":
		q, err = query.NewAdvancedSearch()
	default:
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
	if err != nil {
		return nil, err
	}

	if err := q.Apply(fields); err != nil {
		return nil, err
	}
	return q, nil
}

// isCallerError reports whether the error is the caller's fault (bad field
// name, bad value, unsatisfied pairing) rather than ours.
func isCallerError(err error) bool {
	var ve *query.ValueError
	var me *query.MissingFieldError
	return errors.As(err, &ve) || errors.As(err, &me)
}

// BuildURLHandler serializes a preset + field values to a search URL without
// crawling anything.
func BuildURLHandler(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger().WithField("request_id", requestID)

		var req models.BuildURLRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind build-url request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			cerr := utils.NewValidationError(err.Error())
			return c.JSON(cerr.Code, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   cerr.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		q, err := newQuery(req.Preset, req.Fields)
		if err != nil {
			logger.Error("Rejected build-url request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_query",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		rawURL, err := q.URL()
		if err != nil {
			status := http.StatusInternalServerError
			code := "url_build_failed"
			if isCallerError(err) {
				status = http.StatusBadRequest
				code = "invalid_query"
			}
			return c.JSON(status, models.ErrorResponse{
				Error:     code,
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.BuildURLResponse{
			Success:   true,
			URL:       rawURL,
			RequestID: requestID,
		})
	}
}

// SearchHandler runs a paginated crawl for the requested query.
func SearchHandler(cfg *config.Config, svc *crawler.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger().WithField("request_id", requestID)

		var req models.SearchRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind search request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Search request validation failed", map[string]interface{}{"error": err.Error()})
			cerr := utils.NewValidationError(err.Error())
			return c.JSON(cerr.Code, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   cerr.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		q, err := newQuery(req.Preset, req.Fields)
		if err != nil {
			logger.Error("Rejected search request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_query",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		searchURL, err := q.URL()
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_query",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Crawl request received", map[string]interface{}{
			"preset":       req.Preset,
			"url":          searchURL,
			"max_pages":    req.MaxPages,
			"with_details": req.WithDetails,
		})

		ctx := c.Request().Context()
		result, err := svc.Run(ctx, q, crawler.Options{
			MaxPages:    req.MaxPages,
			WithDetails: req.WithDetails,
		})
		if err != nil {
			logger.Error("Crawl failed", map[string]interface{}{
				"error":         err.Error(),
				"pages_fetched": result.PagesFetched,
			})
			cerr := utils.NewCrawlError(fmt.Sprintf("aborted after %d page(s): %v", result.PagesFetched, err))
			return c.JSON(cerr.Code, models.ErrorResponse{
				Error:     "crawl_failed",
				Message:   cerr.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		response := models.SearchResponse{
			Success:        true,
			Query:          searchURL,
			Links:          result.Links,
			Jobs:           result.Jobs,
			Failures:       result.Failures,
			PagesFetched:   result.PagesFetched,
			ProcessingTime: time.Since(startTime),
			RequestID:      requestID,
		}

		logger.Info("Crawl request completed", map[string]interface{}{
			"processing_time": utils.FormatDuration(time.Since(startTime)),
			"pages_fetched":   result.PagesFetched,
			"links":           len(result.Links),
			"jobs":            len(result.Jobs),
			"failures":        len(result.Failures),
		})

		return c.JSON(http.StatusOK, response)
	}
}
