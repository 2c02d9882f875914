package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssolovyeva/tripkeeper/internal/common"
	"github.com/ssolovyeva/tripkeeper/internal/server/models"
)

// tripDateLayout is the wire format for trip dates.
const tripDateLayout = "2006-01-02"

// tripRequest mirrors the client payload for creating a trip.
type tripRequest struct {
	Title       string `json:"title"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Notes       string `json:"notes"`
}

type tripResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// photoUploadResponse hands the client a presigned PUT slot. Key is the photo
// id used later to request a download URL; the storage key stays internal.
type photoUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type photoURLResponse struct {
	URL string `json:"url"`
}

func toTripResponse(t *models.Trip) tripResponse {
	return tripResponse{
		ID:          t.ID,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.logger.Error(r.Context(), "list trips failed", "error", err.Error())
		writeError(w, err)
		return
	}

	result := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		result = append(result, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	start, err := time.Parse(tripDateLayout, req.StartDate)
	if err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	end, err := time.Parse(tripDateLayout, req.EndDate)
	if err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	trip, err := s.trips.Create(r.Context(), &models.Trip{
		UserID:      userIDFromContext(r.Context()),
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	if err := s.trips.Delete(r.Context(), tripID, userIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleCreatePhotoUpload(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	var req struct {
		ContentType string `json:"contentType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	photo, url, err := s.trips.CreatePhotoUpload(r.Context(), tripID, userIDFromContext(r.Context()), req.ContentType)
	if err != nil {
		s.logger.Error(r.Context(), "photo upload failed", "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, photoUploadResponse{Key: photo.ID, URL: url})
}

func (s *Server) handlePhotoDownloadURL(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	photoID := chi.URLParam(r, "photoID")

	url, err := s.trips.PhotoDownloadURL(r.Context(), tripID, userIDFromContext(r.Context()), photoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, photoURLResponse{URL: url})
}
