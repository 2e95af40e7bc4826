package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"academy/config"

	"github.com/go-resty/resty/v2"
)

// VideoAsset is the slice of the video host's asset metadata we keep.
type VideoAsset struct {
	ID       string  `json:"id"`
	Duration float64 `json:"duration"`
	Status   string  `json:"status"`
}

type playbackIDResponse struct {
	Data struct {
		ID     string `json:"id"`
		Object struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"object"`
	} `json:"data"`
}

type assetResponse struct {
	Data VideoAsset `json:"data"`
}

// GetVideoAsset resolves a playback ID against the video host and returns
// the backing asset's metadata. Used to validate playback IDs on module
// create/update and to record the video duration.
func GetVideoAsset(playbackID string) (*VideoAsset, error) {
	client := resty.New()
	baseURL := config.AppConfig.VideoHostApiURL

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.VideoHostToken).
		Get(baseURL + "playback-ids/" + playbackID)
	if err != nil {
		log.Printf("Error calling video host for playback ID %s: %v", playbackID, err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("video host returned status %d for playback ID %s", resp.StatusCode(), playbackID)
	}

	var playback playbackIDResponse
	if err := json.Unmarshal(resp.Body(), &playback); err != nil {
		log.Printf("Error parsing video host response: %v", err)
		return nil, err
	}
	if playback.Data.Object.Type != "asset" || playback.Data.Object.ID == "" {
		return nil, fmt.Errorf("playback ID %s does not resolve to an asset", playbackID)
	}

	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.VideoHostToken).
		Get(baseURL + "assets/" + playback.Data.Object.ID)
	if err != nil {
		log.Printf("Error fetching asset %s from video host: %v", playback.Data.Object.ID, err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("video host returned status %d for asset %s", resp.StatusCode(), playback.Data.Object.ID)
	}

	var asset assetResponse
	if err := json.Unmarshal(resp.Body(), &asset); err != nil {
		log.Printf("Error parsing asset response: %v", err)
		return nil, err
	}

	return &asset.Data, nil
}
