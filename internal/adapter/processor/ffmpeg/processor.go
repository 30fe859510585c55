package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/proctor/internal/domain"
	"github.com/bnema/proctor/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains invalid characters")
)

// sceneThreshold is the scene-change score above which a frame is reported
// as an event. 0.4 catches cuts without flagging ordinary motion.
const sceneThreshold = 0.4

// Processor renders the reviewed copy of a video with ffmpeg: h264 with a
// burned-in timecode, stream stats from ffprobe, and scene-change events
// for the report.
type Processor struct{}

func NewProcessor() port.Processor {
	return &Processor{}
}

func (p *Processor) Process(ctx context.Context, inputPath, workDir, videoID string) (*port.ProcessResult, error) {
	if err := validatePath(inputPath); err != nil {
		return nil, err
	}

	started := time.Now()
	outputPath := filepath.Join(workDir, domain.VideoFilename(videoID))

	if err := p.render(ctx, inputPath, outputPath); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	probe, err := p.probe(ctx, outputPath)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}

	scenes, err := p.sceneChanges(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("scene detection: %w", err)
	}

	report := buildReport(videoID, probe, scenes, started)
	return &port.ProcessResult{
		VideoPath: outputPath,
		Report:    report,
	}, nil
}

func (p *Processor) render(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-i", inputPath,
		"-c:v", "libx264",
		"-crf", "23",
		"-preset", "medium",
		"-vf", `drawtext=text='%{pts\:hms}':x=10:y=10:fontsize=24:fontcolor=white:box=1:boxcolor=black@0.5`,
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y", outputPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.Bytes()))
	}
	return nil
}

func (p *Processor) probe(ctx context.Context, inputPath string) (*domain.ProbeResult, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	}

	output, err := exec.CommandContext(ctx, "ffprobe", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe domain.ProbeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return &probe, nil
}

// sceneChanges runs the source through the select/metadata filters and
// collects frames whose scene score crosses the threshold. The filter
// prints to stderr, one frame header line followed by key=value lines.
func (p *Processor) sceneChanges(ctx context.Context, inputPath string) ([]domain.SceneEvent, error) {
	filter := fmt.Sprintf("select='gt(scene,%g)',metadata=print", sceneThreshold)
	args := []string{
		"-i", inputPath,
		"-vf", filter,
		"-an",
		"-f", "null", "-",
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.Bytes()))
	}

	return parseSceneOutput(&stderr), nil
}

func parseSceneOutput(r io.Reader) []domain.SceneEvent {
	events := []domain.SceneEvent{}

	var ptsTime float64
	var havePts bool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Parsed_metadata") {
			continue
		}

		if idx := strings.Index(line, "pts_time:"); idx != -1 {
			value := strings.TrimSpace(line[idx+len("pts_time:"):])
			if t, err := strconv.ParseFloat(value, 64); err == nil {
				ptsTime = t
				havePts = true
			}
			continue
		}

		if idx := strings.Index(line, "lavfi.scene_score="); idx != -1 && havePts {
			value := strings.TrimSpace(line[idx+len("lavfi.scene_score="):])
			if score, err := strconv.ParseFloat(value, 64); err == nil {
				events = append(events, domain.SceneEvent{Time: ptsTime, Score: score})
			}
			havePts = false
		}
	}

	return events
}

func buildReport(videoID string, probe *domain.ProbeResult, scenes []domain.SceneEvent, started time.Time) *domain.Report {
	bitRate, _ := strconv.ParseInt(probe.Format.BitRate, 10, 64)
	report := &domain.Report{
		VideoID:     videoID,
		GeneratedAt: time.Now(),
		Format: domain.ReportFormat{
			FormatName:      probe.Format.FormatName,
			DurationSeconds: domain.ParseDuration(probe.Format.Duration),
			SizeBytes:       domain.ParseSize(probe.Format.Size),
			BitRateBPS:      bitRate,
		},
		SceneChanges: scenes,
		Processing: domain.ReportProcessing{
			StartedAt: started,
			ElapsedMS: time.Since(started).Milliseconds(),
			Tool:      "ffmpeg",
		},
	}

	if vs := probe.VideoStream(); vs != nil {
		width, height := probe.Dimensions()
		frames, _ := strconv.ParseInt(vs.NbFrames, 10, 64)
		report.VideoStream = &domain.ReportVideoStream{
			Codec:      vs.CodecName,
			Width:      width,
			Height:     height,
			Fps:        domain.ParseFrameRate(vs.AvgFrameRate),
			FrameCount: frames,
		}
	}

	if as := probe.AudioStream(); as != nil {
		sampleRate, _ := strconv.ParseInt(as.SampleRate, 10, 64)
		report.AudioStream = &domain.ReportAudioStream{
			Codec:        as.CodecName,
			SampleRateHz: sampleRate,
			Channels:     as.Channels,
		}
	}

	return report
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	return nil
}

func lastLine(output []byte) string {
	trimmed := bytes.TrimSpace(output)
	if len(trimmed) == 0 {
		return "no output"
	}
	if idx := bytes.LastIndexByte(trimmed, '\n'); idx != -1 {
		trimmed = trimmed[idx+1:]
	}
	return string(bytes.TrimSpace(trimmed))
}

var _ port.Processor = (*Processor)(nil)
