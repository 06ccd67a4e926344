package server

import (
	"encoding/json"
	"log"

	"backend-trailmap/internal/catalog"
	"backend-trailmap/internal/shared/geojson"

	"github.com/gofiber/fiber/v2"
)

const geojsonCachePrefix = "trailmap:geojson:"

type routeSummary struct {
	Slug           string  `json:"slug"`
	Description    string  `json:"description"`
	Rating         float64 `json:"rating"`
	Location       string  `json:"location"`
	Color          string  `json:"color"`
	DistanceKm     float64 `json:"distance_km"`
	ElevationGainM float64 `json:"elevation_gain_m"`
	GPXPath        string  `json:"gpx_path"`
}

func summarize(r *catalog.Route) routeSummary {
	return routeSummary{
		Slug:           r.Slug,
		Description:    r.Meta.Description,
		Rating:         r.Meta.Rating,
		Location:       r.Meta.Location,
		Color:          r.Meta.Color,
		DistanceKm:     r.Geometry.DistanceKm,
		ElevationGainM: r.Geometry.ElevationGainM,
		GPXPath:        "/tracks/" + r.Slug,
	}
}

func registerRouteHandlers(r fiber.Router, s *Server) {
	r.Get("/", func(c *fiber.Ctx) error {
		routes := s.Holder.Get().Routes()
		summaries := make([]routeSummary, len(routes))
		for i, route := range routes {
			summaries[i] = summarize(route)
		}
		return c.JSON(summaries)
	})

	r.Get("/geojson", func(c *fiber.Ctx) error {
		routes := s.Holder.Get().Routes()
		features := make([]geojson.Feature, len(routes))
		for i, route := range routes {
			features[i] = route.Feature()
		}
		return c.JSON(geojson.NewFeatureCollection(features))
	})

	r.Get("/:slug", func(c *fiber.Ctx) error {
		route, ok := s.Holder.Get().Get(c.Params("slug"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		detail := struct {
			routeSummary
			PointCount int `json:"point_count"`
			Bounds     any `json:"bounds,omitempty"`
		}{routeSummary: summarize(route), PointCount: len(route.Geometry.Points)}
		if b, ok := route.Bounds(); ok {
			detail.Bounds = b
		}
		return c.JSON(detail)
	})

	r.Get("/:slug/geojson", func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		route, ok := s.Holder.Get().Get(slug)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		if s.Redis != nil {
			if cached, err := s.Redis.Get(c.Context(), geojsonCachePrefix+slug).Bytes(); err == nil {
				return c.Send(cached)
			}
		}

		payload, err := json.Marshal(route.Feature())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if s.Redis != nil {
			if err := s.Redis.Set(c.Context(), geojsonCachePrefix+slug, payload, 0).Err(); err != nil {
				log.Printf("redis cache set error: %v", err)
			}
		}
		return c.Send(payload)
	})
}

func registerTrackHandlers(r fiber.Router, s *Server) {
	// Serves the original track bytes unchanged for download.
	r.Get("/:slug", func(c *fiber.Ctx) error {
		route, ok := s.Holder.Get().Get(c.Params("slug"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "track not found")
		}
		c.Set(fiber.HeaderContentType, "application/gpx+xml")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+route.Name+`"`)
		return c.Send(route.Raw)
	})
}

func (s *Server) handleReload(c *fiber.Ctx) error {
	if s.rebuild == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "reload not configured")
	}

	rebuilt, err := s.rebuild(c.Context())
	if err != nil {
		// the previously built catalog keeps serving
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	old := s.Holder.Get()
	s.Holder.Swap(rebuilt)
	s.invalidateGeoJSONCache(c, old, rebuilt)

	return c.JSON(fiber.Map{"routes": rebuilt.Len()})
}

func (s *Server) invalidateGeoJSONCache(c *fiber.Ctx, catalogs ...*catalog.Catalog) {
	if s.Redis == nil {
		return
	}
	for _, cat := range catalogs {
		for _, slug := range cat.Slugs() {
			if err := s.Redis.Del(c.Context(), geojsonCachePrefix+slug).Err(); err != nil {
				log.Printf("redis cache del error: %v", err)
			}
		}
	}
}
