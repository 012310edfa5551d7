// Package xctid generates x-client-transaction-id header values for
// Twitter/X API requests from caller-supplied page documents. The package
// performs no network I/O: callers fetch https://x.com and the ondemand.s
// bundle it references (see OndemandFileURL) and hand the raw text to New.
//
// Algorithm reverse-engineered from Twitter's web app:
//   - https://github.com/iSarabjitDhiman/XClientTransaction (Python original, MIT)
//   - https://antibot.blog/posts/1741552025433 (analysis)
package xctid

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const (
	additionalRandomNumber = 3
	defaultKeyword         = "obfiowerehiring"

	// Animation duration in ms; frame times normalize against it.
	totalTime = 4096.0

	// 2023-05-01T07:00:00Z, the epoch the web app timestamps against.
	epochMs = 1682924400000
)

var animationKeyCleanupRe = regexp.MustCompile(`[.-]`)

// ClientTransaction holds the per-session state derived from the x.com home
// page and its ondemand.s bundle: the decoded site verification key and the
// animation key computed from the loading-spinner SVG frames.
type ClientTransaction struct {
	keyBytes     []byte
	animationKey string
}

// New builds a ClientTransaction from the raw x.com home page HTML and the
// contents of the ondemand.s bundle it references.
func New(homePageHTML, ondemandJS string) (*ClientTransaction, error) {
	doc, err := parseDocument(homePageHTML)
	if err != nil {
		return nil, fmt.Errorf("parse home page: %w", err)
	}

	key := doc.verificationKey()
	if key == "" {
		return nil, fmt.Errorf("twitter-site-verification meta tag not found")
	}
	keyBytes, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("decode verification key: %w", err)
	}

	rowIndex, frameIndices := keyIndices(ondemandJS)
	if len(frameIndices) == 0 {
		return nil, fmt.Errorf("key byte indices not found in ondemand.s")
	}

	ct := &ClientTransaction{keyBytes: keyBytes}
	animKey, err := ct.buildAnimationKey(doc, rowIndex, frameIndices)
	if err != nil {
		return nil, fmt.Errorf("build animation key: %w", err)
	}
	ct.animationKey = animKey

	prefix := animKey
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	slog.Debug("xctid: initialized", slog.String("anim_key", prefix+"..."))
	return ct, nil
}

func (ct *ClientTransaction) buildAnimationKey(doc *document, rowSource int, frameIndices []int) (string, error) {
	row := 0
	if rowSource < len(ct.keyBytes) {
		row = int(ct.keyBytes[rowSource]) % 16
	}

	frameTime := 1.0
	for _, idx := range frameIndices {
		if idx < len(ct.keyBytes) {
			frameTime *= float64(int(ct.keyBytes[idx]) % 16)
		}
	}
	frameTime = jsRound(frameTime/10) * 10

	rows := ct.frameRows(doc)
	if rows == nil || row >= len(rows) {
		return "", fmt.Errorf("animation frame rows missing from home page")
	}

	return ct.animate(rows[row], frameTime/totalTime)
}

// frameRows picks one of the four spinner frames by key byte 5 and returns
// its rows.
func (ct *ClientTransaction) frameRows(doc *document) [][]int {
	frames := doc.animationFrames()
	if len(frames) == 0 || len(ct.keyBytes) < 6 {
		return nil
	}
	frame := frames[int(ct.keyBytes[5])%4]
	if len(frame.data) == 0 {
		return nil
	}
	return frame.data
}

// animate renders one frame row at targetTime: the row encodes a color
// transition, a rotation and a cubic-bezier easing, and the animation key is
// the hex concatenation of the eased color and rotation matrix.
func (ct *ClientTransaction) animate(frame []int, targetTime float64) (string, error) {
	if len(frame) < 11 {
		return "", fmt.Errorf("animation frame too short: %d values", len(frame))
	}

	fromColor := []Value{Num(frame[0]), Num(frame[1]), Num(frame[2]), Num(1)}
	toColor := []Value{Num(frame[3]), Num(frame[4]), Num(frame[5]), Num(1)}
	fromRotation := []Value{Num(0)}
	toRotation := []Value{Num(solve(float64(frame[6]), 60.0, 360.0, true))}

	curveFrames := frame[7:]
	curves := make([]float64, len(curveFrames))
	for i, item := range curveFrames {
		curves[i] = solve(float64(item), isOdd(i), 1.0, false)
	}

	val := newCubicBezier(curves).value(targetTime)

	color, err := Interpolate(fromColor, toColor, val)
	if err != nil {
		return "", err
	}
	rotation, err := Interpolate(fromRotation, toRotation, val)
	if err != nil {
		return "", err
	}
	matrix := rotationMatrix(float64(rotation[0].(Num)))

	var parts []string
	for _, v := range color[:3] {
		channel := math.Max(0, math.Min(255, float64(v.(Num))))
		parts = append(parts, fmt.Sprintf("%x", int(math.Round(channel))))
	}
	for _, value := range matrix {
		rounded := math.Round(value*100) / 100
		if rounded < 0 {
			rounded = -rounded
		}
		hexValue := floatToHex(rounded)
		switch {
		case strings.HasPrefix(hexValue, "."):
			parts = append(parts, "0"+strings.ToLower(hexValue))
		case hexValue == "":
			parts = append(parts, "0")
		default:
			parts = append(parts, hexValue)
		}
	}
	parts = append(parts, "0", "0")

	return animationKeyCleanupRe.ReplaceAllString(strings.Join(parts, ""), ""), nil
}

// GenerateID computes a fresh x-client-transaction-id for the given HTTP
// method and URL path. The query string does not participate.
func (ct *ClientTransaction) GenerateID(method, path string) string {
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}

	timeNow := int(time.Now().UnixMilli()-epochMs) / 1000
	timeNowBytes := make([]byte, 4)
	for i := range timeNowBytes {
		timeNowBytes[i] = byte((timeNow >> (i * 8)) & 0xFF)
	}

	hashInput := fmt.Sprintf("%s!%s!%d%s%s", method, path, timeNow, defaultKeyword, ct.animationKey)
	hash := sha256.Sum256([]byte(hashInput))

	payload := make([]byte, 0, len(ct.keyBytes)+4+16+1)
	payload = append(payload, ct.keyBytes...)
	payload = append(payload, timeNowBytes...)
	payload = append(payload, hash[:16]...)
	payload = append(payload, additionalRandomNumber)

	mask := byte(rand.Intn(256))
	out := make([]byte, len(payload)+1)
	out[0] = mask
	for i, b := range payload {
		out[i+1] = b ^ mask
	}

	return strings.TrimRight(base64.StdEncoding.EncodeToString(out), "=")
}
