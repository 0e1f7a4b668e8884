package hidraw

import (
	"fmt"
	"log/slog"
	"time"

	hid "github.com/sstallion/go-hid"
)

const (
	// ReportLen is the report size on the wire, excluding the report ID byte.
	ReportLen = 32
	// FramePayloadLen is the usable payload capacity per frame: two bytes of
	// every report are taken by the 0x81 0x9F marker.
	FramePayloadLen = ReportLen - 2

	readTimeout = 100 * time.Millisecond
)

// ReportDevice is the device surface the framer needs. *hid.Device
// implements it.
type ReportDevice interface {
	Write(p []byte) (int, error)
	ReadWithTimeout(p []byte, timeout time.Duration) (int, error)
}

// FrameCount returns the number of report frames needed for a payload of n
// bytes. An empty payload still produces one frame, since the closing
// handshake frame is always sent.
func FrameCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + FramePayloadLen - 1) / FramePayloadLen
}

// BuildFrame builds a single output report from up to FramePayloadLen bytes
// of payload. Byte 0 is the report ID (always 0), bytes 1-2 are the frame
// marker, and the payload follows zero-padded to the full report length.
func BuildFrame(chunk []byte) []byte {
	frame := make([]byte, ReportLen+1)
	frame[1] = 0x81
	frame[2] = 0x9F
	copy(frame[3:], chunk)
	return frame
}

// frameChunk returns the payload slice carried by frame i, which is empty
// for the trailing pad frame of an empty payload.
func frameChunk(payload []byte, i int) []byte {
	start := i * FramePayloadLen
	if start >= len(payload) {
		return nil
	}
	end := min(start+FramePayloadLen, len(payload))
	return payload[start:end]
}

// SendReports writes the payload to one device as a sequence of report
// frames. After each write it drains a possible acknowledgment with a
// bounded read; read timeouts and errors are non-fatal since many keyboards
// never answer. A write failure aborts the remaining frames.
func SendReports(dev ReportDevice, payload []byte, logger *slog.Logger) error {
	count := FrameCount(len(payload))
	logger.Debug("sending payload", "bytes", len(payload), "frames", count, "data", fmt.Sprintf("% X", payload))

	for i := 0; i < count; i++ {
		frame := BuildFrame(frameChunk(payload, i))
		logger.Debug("writing report", "frame", i+1, "total", count, "data", fmt.Sprintf("% X", frame))
		if _, err := dev.Write(frame); err != nil {
			return fmt.Errorf("writing report %d/%d: %w", i+1, count, err)
		}

		resp := make([]byte, ReportLen+1)
		n, err := dev.ReadWithTimeout(resp, readTimeout)
		if err != nil {
			logger.Debug("no response received", "frame", i+1, "error", err)
			continue
		}
		logger.Debug("received response", "frame", i+1, "bytes", n, "data", fmt.Sprintf("% X", resp[:n]))
	}
	return nil
}

// SendToAll fans the payload out to each device in order, tallying successes
// and failures independently. It returns nil when every device succeeded,
// PartialSendError for a mix and SendReportError when all failed.
func SendToAll(devs []ReportDevice, payload []byte, logger *slog.Logger) error {
	var succeeded, failed int
	for i, dev := range devs {
		if err := SendReports(dev, payload, logger); err != nil {
			logger.Warn("sending to device failed", "device", i, "error", err)
			failed++
			continue
		}
		succeeded++
	}
	switch {
	case failed == 0:
		return nil
	case succeeded == 0:
		return &SendReportError{Failed: failed}
	default:
		return &PartialSendError{Succeeded: succeeded, Failed: failed}
	}
}

// Send opens every device matching the descriptor and delivers the payload
// to each of them. Handles are opened and released within the call.
func Send(desc Descriptor, payload []byte, logger *slog.Logger) error {
	if err := hid.Init(); err != nil {
		return &InitError{Err: err}
	}
	defer hid.Exit()

	devs, err := OpenAll(desc)
	if err != nil {
		return err
	}
	defer func() {
		for _, d := range devs {
			_ = d.Close()
		}
	}()
	logger.Debug("opened matching devices", "count", len(devs))

	targets := make([]ReportDevice, len(devs))
	for i, d := range devs {
		targets[i] = d
	}
	return SendToAll(targets, payload, logger)
}
