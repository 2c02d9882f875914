package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ssolovyeva/tripkeeper/internal/client/api"
	"github.com/ssolovyeva/tripkeeper/internal/netx"
)

// uploadToPresignedURL is a test seam around the plain-HTTP upload helper.
var uploadToPresignedURL = netx.UploadToPresignedURL

// List prints the user's trips.
func (a *App) List(ctx context.Context) error {
	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	trips, err := a.trips.ListTrips(rctx)
	if err != nil {
		log.Printf("Cannot list trips: %s", userMessage(err))
		return err
	}

	if len(trips) == 0 {
		fmt.Println("No trips yet")
		return nil
	}
	for _, tr := range trips {
		fmt.Printf("%s  %s (%s)  %s - %s\n",
			tr.ID, tr.Title, tr.Destination,
			tr.StartDate.Format("2006-01-02"), tr.EndDate.Format("2006-01-02"))
	}
	return nil
}

// AddTrip prompts for trip details and creates the trip.
func (a *App) AddTrip(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter trip title", os.Stdout)
	if err != nil {
		return err
	}
	destination, err := getSimpleText(a.reader, "Enter destination", os.Stdout)
	if err != nil {
		return err
	}
	start, err := getSimpleText(a.reader, "Enter start date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	end, err := getSimpleText(a.reader, "Enter end date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	trip, err := a.trips.CreateTrip(rctx, api.TripRequest{
		Title:       title,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		log.Printf("Cannot create trip: %s", userMessage(err))
		return err
	}

	fmt.Printf("Created trip %s\n", trip.ID)
	return nil
}

// DeleteTrip prompts for a trip ID and deletes it.
func (a *App) DeleteTrip(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter trip id", os.Stdout)
	if err != nil {
		return err
	}

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.trips.DeleteTrip(rctx, id); err != nil {
		log.Printf("Cannot delete trip: %s", userMessage(err))
		return err
	}

	fmt.Println("Deleted")
	return nil
}

// AttachPhoto uploads a local photo to a trip journal, using a presigned
// URL issued by the server. The presigned PUT goes through plain HTTP since
// the URL itself carries the authorization.
func (a *App) AttachPhoto(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter trip id", os.Stdout)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Enter photo file path", os.Stdout)
	if err != nil {
		return err
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Cannot read file: %s", err.Error())
		return err
	}
	contentType := photoContentType(path, payload)

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	upload, err := a.trips.CreatePhotoUpload(rctx, id, contentType)
	if err != nil {
		log.Printf("Cannot request upload: %s", userMessage(err))
		return err
	}

	if err := uploadToPresignedURL(upload.URL, payload, contentType); err != nil {
		log.Printf("Upload failed: %s", err.Error())
		return err
	}

	fmt.Printf("Uploaded as %s\n", upload.Key)
	return nil
}

func photoContentType(path string, payload []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return http.DetectContentType(payload)
	}
}
