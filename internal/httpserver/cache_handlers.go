package httpserver

import (
	"net/http"

	"go.uber.org/zap"

	"travel-gateway/internal/models"
)

// handleCacheStats reports cache counters next to the queue's
func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, http.StatusOK, CacheStatsResponse{
		Cache: s.gateway.Cache().Stats(),
		Queue: s.gateway.Queue().Stats(),
	})
}

// handleCacheEntry describes a single key
func (s *Server) handleCacheEntry(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		s.writeErrorResponse(w, "Missing required parameter: key", http.StatusBadRequest)
		return
	}

	s.writeResponse(w, http.StatusOK, CacheEntryResponse{
		Key:            key,
		CacheEntryInfo: s.gateway.Cache().EntryInfo(key),
	})
}

// handleCacheInvalidate removes one key, every key under a prefix or resource type,
// or, with no parameters, everything
func (s *Server) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cache := s.gateway.Cache()

	if key := query.Get("key"); key != "" {
		removed := 0
		if cache.Invalidate(key) {
			removed = 1
		}
		s.writeResponse(w, http.StatusOK, CacheInvalidateResponse{Removed: removed})
		return
	}

	prefix := query.Get("prefix")
	if resourceType := models.ResourceType(query.Get("type")); resourceType != "" {
		if !resourceType.IsValid() {
			s.writeErrorResponse(w, "Unknown resource type: "+string(resourceType), http.StatusBadRequest)
			return
		}
		prefix = cache.Prefix(resourceType)
	}

	if prefix == "" {
		removed := cache.Clear()
		s.logger.Info("Cache cleared through admin API", zap.Int("removed", removed))
		s.writeResponse(w, http.StatusOK, CacheInvalidateResponse{Removed: removed})
		return
	}

	s.writeResponse(w, http.StatusOK, CacheInvalidateResponse{
		Removed: cache.InvalidateByPrefix(prefix),
		Prefix:  prefix,
	})
}

// handleStatsReset zeroes the cache and queue counters
func (s *Server) handleStatsReset(w http.ResponseWriter, r *http.Request) {
	s.gateway.Cache().ResetStats()
	s.gateway.Queue().ResetStats()
	s.writeResponse(w, http.StatusOK, CacheStatsResponse{
		Cache: s.gateway.Cache().Stats(),
		Queue: s.gateway.Queue().Stats(),
	})
}

// handleQueueClear rejects every request still waiting for dispatch
func (s *Server) handleQueueClear(w http.ResponseWriter, r *http.Request) {
	cleared := s.gateway.Queue().ClearQueue()
	s.writeResponse(w, http.StatusOK, map[string]int{"cleared": cleared})
}
