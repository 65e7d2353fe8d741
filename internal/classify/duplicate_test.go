package classify

import (
	"crypto/md5"
	"fmt"
	"testing"

	"github.com/maxvaer/dirhunt/internal/scanner"
)

func TestDuplicateFilter_ExactThreshold(t *testing.T) {
	f := NewDuplicateFilter(2)
	r := &scanner.ProbeResult{StatusCode: 200, BodyHash: md5.Sum([]byte("same page")), WordCount: 2, LineCount: 1}

	for i := 0; i < 2; i++ {
		if f.Suppress(r) {
			t.Fatalf("repeat %d should pass", i)
		}
	}
	if !f.Suppress(r) {
		t.Error("third identical response should be filtered")
	}
}

func TestDuplicateFilter_StatusSeparates(t *testing.T) {
	f := NewDuplicateFilter(1)
	hash := md5.Sum([]byte("page"))

	if f.Suppress(&scanner.ProbeResult{StatusCode: 200, BodyHash: hash}) {
		t.Error("first 200 should pass")
	}
	if f.Suppress(&scanner.ProbeResult{StatusCode: 403, BodyHash: hash}) {
		t.Error("first 403 with the same body should pass")
	}
}

func TestDuplicateFilter_ShapeCatchesEchoedPaths(t *testing.T) {
	f := NewDuplicateFilter(2) // shape threshold max(6, 5) = 6

	for i := 0; i < 12; i++ {
		body := fmt.Sprintf("<html>login page /app/login/path%d</html>", i)
		r := &scanner.ProbeResult{
			StatusCode: 200,
			Size:       int64(len(body)),
			BodyHash:   md5.Sum([]byte(body)),
			WordCount:  320,
			LineCount:  150,
		}
		filtered := f.Suppress(r)
		if i < 6 && filtered {
			t.Errorf("response %d should pass within the shape threshold", i)
		}
		if i >= 6 && !filtered {
			t.Errorf("response %d should be filtered past the shape threshold", i)
		}
	}
}

func TestDuplicateFilter_UniqueResponsesPass(t *testing.T) {
	f := NewDuplicateFilter(1)
	if f.shapeThreshold != 5 {
		t.Fatalf("shapeThreshold = %d, want minimum 5", f.shapeThreshold)
	}
	for i := 0; i < 50; i++ {
		r := &scanner.ProbeResult{
			StatusCode: 200,
			BodyHash:   md5.Sum([]byte{byte(i)}),
			WordCount:  i * 10,
			LineCount:  i * 5,
		}
		if f.Suppress(r) {
			t.Errorf("unique response %d should not be filtered", i)
		}
	}
}
