package xctid

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
)

// testKeyBytes is 48 bytes of 0x01: frame index 1%4, row index 1, frame time
// collapsing to 0 so the animation evaluates at its start.
func testKeyBytes() []byte {
	b := make([]byte, 48)
	for i := range b {
		b[i] = 1
	}
	return b
}

const testOndemandJS = `var r=function(k){return parseInt(k[2], 16)%16};var f=parseInt(k[7], 16)*parseInt(k[9], 16);`

func testHomePage(key string) string {
	segment := "10 20 30 40 50 60 70 80 90 100 110 120"
	d := "M0 0" + strings.Repeat("C"+segment, 3)

	var svgs strings.Builder
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&svgs, `<svg id="loading-x-anim-%d"><g><path d="M0 0h10"/><path fill="#1d9bf008" d="%s"/></g></svg>`, i, d)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta name="twitter-site-verification" content="%s"/>
<script>{"ondemand.s":"deadbeef"}</script>
</head>
<body>%s</body>
</html>`, key, svgs.String())
}

func TestNew(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(testKeyBytes())
	ct, err := New(testHomePage(key), testOndemandJS)
	if err != nil {
		t.Fatal(err)
	}

	// Frame time 1*1 rounds to 0, so the animation key is the frame start:
	// color 10,20,30 plus the identity rotation matrix.
	if ct.animationKey != "a141e100100" {
		t.Fatalf("animation key = %q, want a141e100100", ct.animationKey)
	}
}

func TestNewMissingVerificationKey(t *testing.T) {
	page := `<html><head></head><body></body></html>`
	if _, err := New(page, testOndemandJS); err == nil {
		t.Fatal("expected error for missing verification key")
	}
}

func TestNewBadVerificationKey(t *testing.T) {
	if _, err := New(testHomePage("!!!not-base64!!!"), testOndemandJS); err == nil {
		t.Fatal("expected error for undecodable verification key")
	}
}

func TestNewMissingIndices(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(testKeyBytes())
	if _, err := New(testHomePage(key), "var x = 1;"); err == nil {
		t.Fatal("expected error for ondemand.s without indices")
	}
}

func TestNewMissingFrames(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(testKeyBytes())
	page := fmt.Sprintf(`<html><head><meta name="twitter-site-verification" content="%s"/></head><body></body></html>`, key)
	if _, err := New(page, testOndemandJS); err == nil {
		t.Fatal("expected error when animation frames are missing")
	}
}

func TestGenerateID(t *testing.T) {
	keyBytes := testKeyBytes()
	key := base64.StdEncoding.EncodeToString(keyBytes)
	ct, err := New(testHomePage(key), testOndemandJS)
	if err != nil {
		t.Fatal(err)
	}

	id := ct.GenerateID("POST", "/i/api/1.1/jot/client_event.json?category=perf")
	if strings.ContainsRune(id, '=') {
		t.Fatal("expected unpadded base64")
	}

	raw, err := base64.StdEncoding.DecodeString(b64pad(id))
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}

	// mask byte + key bytes + 4 time bytes + 16 hash bytes + flag byte
	if want := 1 + len(keyBytes) + 4 + 16 + 1; len(raw) != want {
		t.Fatalf("payload length %d, want %d", len(raw), want)
	}

	mask := raw[0]
	for i, b := range keyBytes {
		if raw[i+1]^mask != b {
			t.Fatalf("key byte %d not recoverable from payload", i)
		}
	}
	if raw[len(raw)-1]^mask != additionalRandomNumber {
		t.Fatal("trailing flag byte not recoverable from payload")
	}
}

func b64pad(s string) string {
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return s
}
