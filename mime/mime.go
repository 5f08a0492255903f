// Package mime implements a closed-set media type parser and matcher,
// used by the Accept header core to rank candidate responses.
package mime

import "strings"

// Type is a top-level media type.
type Type uint8

const (
	TypeNone Type = iota
	TypeAny
	TypeApplication
	TypeAudio
	TypeFont
	TypeImage
	TypeMessage
	TypeMultipart
	TypeText
	TypeVideo
)

func parseType(v string) Type {
	switch v {
	case "*":
		return TypeAny
	case "application":
		return TypeApplication
	case "audio":
		return TypeAudio
	case "font":
		return TypeFont
	case "image":
		return TypeImage
	case "message":
		return TypeMessage
	case "multipart":
		return TypeMultipart
	case "text":
		return TypeText
	case "video":
		return TypeVideo
	default:
		return TypeNone
	}
}

// SubType is a media subtype, restricted to the set this service
// actually needs to recognize. Anything else parses to SubNone.
type SubType uint8

const (
	SubNone SubType = iota
	SubAny
	SubCss
	SubCsv
	SubForm
	SubGif
	SubHTML
	SubJPEG
	SubJSON
	SubJsonld
	SubOctetStream
	SubOgg
	SubPDF
	SubPlain
	SubPNG
	SubRichText
	SubSVG
	SubUrlEncoded
	SubWebp
	SubXhtml
	SubXML
	SubYAML
)

func parseSub(v string) SubType {
	switch v {
	case "*":
		return SubAny
	case "css":
		return SubCss
	case "csv":
		return SubCsv
	case "form-data":
		return SubForm
	case "gif":
		return SubGif
	case "html":
		return SubHTML
	case "jpeg":
		return SubJPEG
	case "json":
		return SubJSON
	case "ld+json":
		return SubJsonld
	case "octet-stream":
		return SubOctetStream
	case "ogg":
		return SubOgg
	case "pdf":
		return SubPDF
	case "plain":
		return SubPlain
	case "png":
		return SubPNG
	case "richtext":
		return SubRichText
	case "svg", "svg+xml":
		return SubSVG
	case "x-www-form-urlencoded":
		return SubUrlEncoded
	case "webp":
		return SubWebp
	case "xhtml+xml":
		return SubXhtml
	case "xml":
		return SubXML
	case "yaml", "yml":
		return SubYAML
	default:
		return SubNone
	}
}

// validForType reports whether a subtype is registered under typ.
func (s SubType) validForType(typ Type) bool {
	if typ == TypeAny {
		return true
	}
	switch s {
	case SubNone:
		return false
	case SubAny:
		return typ != TypeNone
	case SubOgg:
		return typ == TypeApplication || typ == TypeAudio || typ == TypeVideo
	case SubJPEG:
		return typ == TypeImage || typ == TypeVideo
	case SubRichText:
		return typ == TypeText
	case SubJSON, SubJsonld, SubOctetStream, SubPDF, SubUrlEncoded, SubForm, SubXML, SubXhtml, SubYAML:
		return typ == TypeApplication
	case SubGif, SubPNG, SubSVG, SubWebp:
		return typ == TypeImage
	case SubCss, SubCsv, SubHTML, SubPlain:
		return typ == TypeText
	default:
		return false
	}
}

// MediaType is a (type, subtype) pair, e.g. "application/json".
type MediaType struct {
	Type Type
	Sub  SubType
}

// Any is the "*/*" wildcard media type.
func Any() MediaType { return MediaType{Type: TypeAny, Sub: SubAny} }

// Parse parses a "type/subtype" string. Unknown components map to
// their None value, which makes the result invalid.
func Parse(v string) MediaType {
	t, s, ok := strings.Cut(v, "/")
	if !ok {
		return MediaType{}
	}
	return MediaType{Type: parseType(strings.TrimSpace(t)), Sub: parseSub(strings.TrimSpace(s))}
}

// Valid reports whether both components are set and the subtype is
// registered under the top-level type.
func (m MediaType) Valid() bool {
	if m.Type == TypeNone || m.Sub == SubNone {
		return false
	}
	return m.Sub.validForType(m.Type)
}

// Matches reports whether m and other describe overlapping media,
// with Any acting as a wildcard on either side. None never matches.
func (m MediaType) Matches(other MediaType) bool {
	if m.Type == TypeNone || m.Sub == SubNone || other.Type == TypeNone || other.Sub == SubNone {
		return false
	}
	typeMatch := m.Type == other.Type || m.Type == TypeAny || other.Type == TypeAny
	subMatch := m.Sub == other.Sub || m.Sub == SubAny || other.Sub == SubAny
	return typeMatch && subMatch
}

func (m MediaType) String() string {
	return typeName(m.Type) + "/" + subName(m.Sub)
}

func typeName(t Type) string {
	switch t {
	case TypeAny:
		return "*"
	case TypeApplication:
		return "application"
	case TypeAudio:
		return "audio"
	case TypeFont:
		return "font"
	case TypeImage:
		return "image"
	case TypeMessage:
		return "message"
	case TypeMultipart:
		return "multipart"
	case TypeText:
		return "text"
	case TypeVideo:
		return "video"
	default:
		return ""
	}
}

func subName(s SubType) string {
	switch s {
	case SubAny:
		return "*"
	case SubCss:
		return "css"
	case SubCsv:
		return "csv"
	case SubForm:
		return "form-data"
	case SubGif:
		return "gif"
	case SubHTML:
		return "html"
	case SubJPEG:
		return "jpeg"
	case SubJSON:
		return "json"
	case SubJsonld:
		return "ld+json"
	case SubOctetStream:
		return "octet-stream"
	case SubOgg:
		return "ogg"
	case SubPDF:
		return "pdf"
	case SubPlain:
		return "plain"
	case SubPNG:
		return "png"
	case SubRichText:
		return "richtext"
	case SubSVG:
		return "svg+xml"
	case SubUrlEncoded:
		return "x-www-form-urlencoded"
	case SubWebp:
		return "webp"
	case SubXhtml:
		return "xhtml+xml"
	case SubXML:
		return "xml"
	case SubYAML:
		return "yaml"
	default:
		return ""
	}
}
