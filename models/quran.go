package models

import (
	"encoding/base64"
	"fmt"
)

const (
	AudioEventPlaying = "playing"
	AudioEventPaused  = "paused"
	AudioEventEnded   = "ended"

	QuranXPInterval = 10
)

type QuranTrack struct {
	Key   string `json:"key"`
	File  string `json:"file"`
	Label string `json:"label"`
}

type QuranProgress struct {
	PositionSeconds float64 `json:"position"`
	XP              int     `json:"xp"`
}

type QuranProgressRow struct {
	User_ID          string  `json:"uid"`
	Track_Key        string  `json:"trackKey"`
	Position_Seconds float64 `json:"position"`
	Xp               int     `json:"xp"`
}

type AudioProgressRequest struct {
	TrackKey        string   `json:"trackKey" binding:"required"`
	PositionSeconds *float64 `json:"positionSeconds" binding:"required,min=0"`
	Event           string   `json:"event" binding:"required,oneof=playing paused ended"`
}

// TrackKey encodes a file path into a store-safe key.
func TrackKey(file string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(file))
}

var QuranTracks = buildQuranTracks()

func buildQuranTracks() []QuranTrack {
	tracks := make([]QuranTrack, 0, 10)
	for i := 1; i <= 10; i++ {
		file := fmt.Sprintf("quran/para-%02d-urdu.mp3", i)
		tracks = append(tracks, QuranTrack{
			Key:   TrackKey(file),
			File:  file,
			Label: fmt.Sprintf("Para %d - Urdu Translation", i),
		})
	}
	return tracks
}

func FindQuranTrack(key string) (QuranTrack, bool) {
	for _, t := range QuranTracks {
		if t.Key == key {
			return t, true
		}
	}
	return QuranTrack{}, false
}
