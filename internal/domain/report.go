package domain

import "time"

// SceneEvent marks an abrupt visual change in the source video. Reviewers
// use the timestamps to jump to moments worth a second look.
type SceneEvent struct {
	Time  float64 `json:"time"`
	Score float64 `json:"score"`
}

type ReportFormat struct {
	FormatName      string  `json:"format_name"`
	DurationSeconds float64 `json:"duration_seconds"`
	SizeBytes       int64   `json:"size_bytes"`
	BitRateBPS      int64   `json:"bit_rate_bps"`
}

type ReportVideoStream struct {
	Codec      string  `json:"codec"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Fps        float64 `json:"fps"`
	FrameCount int64   `json:"frame_count"`
}

type ReportAudioStream struct {
	Codec        string `json:"codec"`
	SampleRateHz int64  `json:"sample_rate_hz"`
	Channels     int    `json:"channels"`
}

type ReportProcessing struct {
	StartedAt time.Time `json:"started_at"`
	ElapsedMS int64     `json:"elapsed_ms"`
	Tool      string    `json:"tool"`
}

// Report is the metadata document published next to every processed video.
type Report struct {
	VideoID      string             `json:"video_id"`
	SourceURL    string             `json:"source_url"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Format       ReportFormat       `json:"format"`
	VideoStream  *ReportVideoStream `json:"video_stream,omitempty"`
	AudioStream  *ReportAudioStream `json:"audio_stream,omitempty"`
	SceneChanges []SceneEvent       `json:"scene_changes"`
	Processing   ReportProcessing   `json:"processing"`
}
