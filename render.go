package kakuyomu

import (
	"strconv"
	"strings"
)

// Kind identifies an entity kind and, with it, a render schema.
type Kind int

// Entity kinds.
const (
	KindWork Kind = iota + 1
	KindEpisode
	KindRankingWork
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWork:
		return "work"
	case KindEpisode:
		return "episode"
	case KindRankingWork:
		return "ranking_work"
	}
	return "unknown"
}

// Transform controls how a field value is written.
type Transform int

// Field transforms.
const (
	// Identity writes "Label: value".
	Identity Transform = iota
	// Join writes list values as "Label: a, b".
	Join
	// Fence writes the value between ``` lines below "Label:".
	Fence
)

// RenderField projects one record attribute into an output line.
type RenderField struct {
	Label     string
	Key       string
	Transform Transform
}

// Render schemas, in output order.
var (
	WorkFields = []RenderField{
		{Label: "ID", Key: "id"},
		{Label: "タイトル", Key: "title"},
		{Label: "キャッチフレーズ", Key: "catchphrase"},
		{Label: "タグ", Key: "tagLabels", Transform: Join},
		{Label: "イントロダクション", Key: "introduction", Transform: Fence},
	}

	EpisodeFields = []RenderField{
		{Label: "ID", Key: "id"},
		{Label: "タイトル", Key: "title"},
		{Label: "公開日", Key: "publishedAt"},
	}

	RankingWorkFields = []RenderField{
		{Label: "順位", Key: "rank"},
		{Label: "ID", Key: "id"},
		{Label: "タイトル", Key: "title"},
		{Label: "作者", Key: "author"},
		{Label: "キャッチフレーズ", Key: "catchphrase"},
		{Label: "タグ", Key: "tags", Transform: Join},
		{Label: "イントロダクション", Key: "introduction", Transform: Fence},
	}
)

// Fields returns the render schema for kind.
func Fields(kind Kind) []RenderField {
	switch kind {
	case KindWork:
		return WorkFields
	case KindEpisode:
		return EpisodeFields
	case KindRankingWork:
		return RankingWorkFields
	}
	return nil
}

const fence = "```"

// Render formats records with the schema of kind. Each record is followed by
// exactly one blank line, the last one included. Fields whose value is
// absent, null, an empty string or an empty list are omitted.
// No records renders as the empty string.
func Render(records []Record, kind Kind) string {
	if len(records) == 0 {
		return ""
	}

	fields := Fields(kind)
	var b strings.Builder
	for _, rec := range records {
		for _, f := range fields {
			f.write(&b, rec)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (f RenderField) write(b *strings.Builder, rec Record) {
	switch f.Transform {
	case Join:
		values := listValue(rec[f.Key])
		if len(values) == 0 {
			return
		}
		b.WriteString(f.Label + ": " + strings.Join(values, ", ") + "\n")
	case Fence:
		text, ok := scalarValue(rec[f.Key])
		if !ok {
			return
		}
		b.WriteString(f.Label + ":\n" + fence + "\n" + text + "\n" + fence + "\n")
	default:
		// Lists only render through Join.
		text, ok := scalarValue(rec[f.Key])
		if !ok {
			return
		}
		b.WriteString(f.Label + ": " + text + "\n")
	}
}

// scalarValue formats strings, numbers and booleans. Nested objects are
// references into the state graph and are never resolved.
func scalarValue(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

func listValue(v any) []string {
	switch v := v.(type) {
	case []string:
		var values []string
		for _, s := range v {
			if s != "" {
				values = append(values, s)
			}
		}
		return values
	case []any:
		var values []string
		for _, item := range v {
			if s, ok := scalarValue(item); ok {
				values = append(values, s)
			}
		}
		return values
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}
