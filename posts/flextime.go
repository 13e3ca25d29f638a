package posts

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexTime decodes the timestamp shapes the scraping actors emit: RFC3339
// strings, epoch seconds, or epoch milliseconds. Values above 1e12 are
// treated as milliseconds.
type FlexTime struct {
	t *time.Time
}

func (f FlexTime) Time() *time.Time {
	return f.t
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		f.t = nil
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		// Some actors send numeric timestamps as strings
		if epoch, err := strconv.ParseInt(str, 10, 64); err == nil {
			f.t = fromEpoch(epoch)
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			// Unparseable timestamps degrade to unknown rather than
			// failing the whole item
			f.t = nil
			return nil
		}
		f.t = &parsed
		return nil
	}

	var epoch int64
	if err := json.Unmarshal(data, &epoch); err != nil {
		f.t = nil
		return nil
	}
	f.t = fromEpoch(epoch)
	return nil
}

func fromEpoch(epoch int64) *time.Time {
	if epoch <= 0 {
		return nil
	}
	var t time.Time
	if epoch > 1_000_000_000_000 {
		t = time.UnixMilli(epoch).UTC()
	} else {
		t = time.Unix(epoch, 0).UTC()
	}
	return &t
}

// FlexString decodes values that may arrive as a plain string or as an
// object carrying the string under a known key, e.g. tagged users that are
// either "handle" or {"username": "handle"} and hashtags that are either
// "tag" or {"name": "tag"}.
type FlexString struct {
	value string
	keys  []string
}

func (f FlexString) String() string {
	return f.value
}

type TaggedUser struct{ FlexString }

func (u *TaggedUser) UnmarshalJSON(data []byte) error {
	u.keys = []string{"username", "name"}
	return u.decode(data)
}

type HashtagRef struct{ FlexString }

func (h *HashtagRef) UnmarshalJSON(data []byte) error {
	h.keys = []string{"name", "title"}
	return h.decode(data)
}

func (f *FlexString) decode(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		return json.Unmarshal(data, &f.value)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		f.value = ""
		return nil
	}
	for _, key := range f.keys {
		if raw, ok := obj[key]; ok {
			var str string
			if err := json.Unmarshal(raw, &str); err == nil {
				f.value = str
				return nil
			}
		}
	}
	f.value = ""
	return nil
}
