package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringStripsScriptBlocks(t *testing.T) {
	assert.Equal(t, "hello ", String(`hello <script>alert("xss")</script>`))
	assert.Equal(t, "ab", String(`a<SCRIPT type="text/javascript">bad()</SCRIPT>b`))
	assert.Equal(t, "", String("<script>\nmultiline()\n</script>"))
}

func TestStringStripsJavascriptURIs(t *testing.T) {
	assert.Equal(t, "alert(1)", String("javascript:alert(1)"))
	assert.Equal(t, "click alert(1)", String("click JavaScript:alert(1)"))
}

func TestStringStripsEventHandlers(t *testing.T) {
	assert.Equal(t, `<img src=x "boom">`, String(`<img src=x onerror="boom">`))
	assert.Equal(t, "1", String("onclick =1"))
}

func TestStringLeavesCleanInputAlone(t *testing.T) {
	clean := "A perfectly ordinary ticket title, even with <b>markup</b> and a: colon"
	assert.Equal(t, clean, String(clean))
}

func TestStringIsIdempotent(t *testing.T) {
	inputs := []string{
		`hello <script>alert(1)</script> javascript:x onload=1`,
		"nothing to strip here",
		"",
	}
	for _, in := range inputs {
		once := String(in)
		assert.Equal(t, once, String(once))
	}
}

func TestValueRecursesNestedContainers(t *testing.T) {
	payload := map[string]interface{}{
		"title": `<script>x</script>Printer broken`,
		"count": float64(3),
		"flag":  true,
		"meta": map[string]interface{}{
			"note": "javascript:void(0)",
			"tags": []interface{}{
				"clean",
				map[string]interface{}{"deep": `onmouseover= "hi"`},
			},
		},
	}

	cleaned := Value(payload).(map[string]interface{})

	assert.Equal(t, "Printer broken", cleaned["title"])
	assert.Equal(t, float64(3), cleaned["count"])
	assert.Equal(t, true, cleaned["flag"])

	meta := cleaned["meta"].(map[string]interface{})
	assert.Equal(t, "void(0)", meta["note"])

	tags := meta["tags"].([]interface{})
	assert.Equal(t, "clean", tags[0])
	deep := tags[1].(map[string]interface{})
	assert.Equal(t, ` "hi"`, deep["deep"])
}

func TestValueLeavesNonStringsUntouched(t *testing.T) {
	assert.Equal(t, 42, Value(42))
	assert.Equal(t, 4.2, Value(4.2))
	assert.Equal(t, true, Value(true))
	assert.Nil(t, Value(nil))
}

func TestMapSanitizesInPlace(t *testing.T) {
	m := map[string]interface{}{
		"a": "javascript:alert(1)",
		"b": "fine",
	}
	Map(m)
	assert.Equal(t, "alert(1)", m["a"])
	assert.Equal(t, "fine", m["b"])
}
