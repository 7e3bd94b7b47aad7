package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	locations = []string{"Durban", "Cape Town", "Johannesburg", "Pretoria", "Port Elizabeth"}
	types     = []string{"Locker", "Garage", "Storage Unit", "Warehouse"}
	adjective = []string{"Secure", "Budget", "Premium", "Central", "Harbour", "Metro"}
	noun      = []string{"Vault", "Space", "Depot", "Store", "Hold", "Box"}
)

type facilityPayload struct {
	FacilityName string  `json:"facility_name"`
	Location     string  `json:"location"`
	Type         string  `json:"type"`
	Image        string  `json:"image"`
	Capacity     int     `json:"capacity"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
}

func main() {
	apiURL := flag.String("url", "http://localhost:8081", "base URL of the API")
	count := flag.Int("count", 10, "number of facilities to create")
	flag.Parse()

	logger := logrus.New()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	client := &http.Client{Timeout: 10 * time.Second}

	created := 0
	for i := 0; i < *count; i++ {
		payload := randomFacility(rng)

		body, err := json.Marshal(payload)
		if err != nil {
			logger.WithError(err).Fatal("Failed to marshal facility")
		}

		resp, err := client.Post(*apiURL+"/facilities", "application/json", bytes.NewReader(body))
		if err != nil {
			logger.WithError(err).Fatal("Failed to reach API")
		}

		var result map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			logger.WithError(err).Warn("Unreadable response body")
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			logger.WithFields(logrus.Fields{
				"status":   resp.StatusCode,
				"response": result,
			}).Error("Facility rejected")
			continue
		}

		created++
		logger.WithFields(logrus.Fields{
			"facility_id":   result["facility_id"],
			"facility_name": payload.FacilityName,
			"location":      payload.Location,
		}).Info("Facility created")
	}

	logger.WithFields(logrus.Fields{
		"created":   created,
		"requested": *count,
	}).Info("Seeding finished")
}

func randomFacility(rng *rand.Rand) facilityPayload {
	name := fmt.Sprintf("%s %s %d", adjective[rng.Intn(len(adjective))], noun[rng.Intn(len(noun))], rng.Intn(900)+100)
	location := locations[rng.Intn(len(locations))]
	facilityType := types[rng.Intn(len(types))]

	return facilityPayload{
		FacilityName: name,
		Location:     location,
		Type:         facilityType,
		Image:        placeholderImage(rng),
		Capacity:     rng.Intn(50) + 1,
		Price:        float64(rng.Intn(4000)+500) / 10,
		Description:  fmt.Sprintf("%s in %s", facilityType, location),
	}
}

// placeholderImage renders a small solid-color PNG so every seeded
// facility has a real decodable image behind its reference.
func placeholderImage(rng *rand.Rand) string {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill := color.RGBA{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
