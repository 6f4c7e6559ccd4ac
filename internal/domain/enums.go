package domain

// LabelType identifies one of the known physical label layouts. The set is
// closed; free-text client names are mapped onto it by the labels package.
type LabelType string

const (
	LabelTypeMercadona LabelType = "mercadona"
	LabelTypeCarrefour LabelType = "carrefour"
	LabelTypeConsum    LabelType = "consum"
	LabelTypeAlcampo   LabelType = "alcampo"
	LabelTypeGeneric   LabelType = "generic"
)

// AllLabelTypes lists every known layout.
var AllLabelTypes = []LabelType{
	LabelTypeMercadona,
	LabelTypeCarrefour,
	LabelTypeConsum,
	LabelTypeAlcampo,
	LabelTypeGeneric,
}

// Valid reports whether l is a member of the closed layout set.
func (l LabelType) Valid() bool {
	switch l {
	case LabelTypeMercadona, LabelTypeCarrefour, LabelTypeConsum, LabelTypeAlcampo, LabelTypeGeneric:
		return true
	}
	return false
}

// ContentFamily groups recognized document content types into the three
// processing paths of the order parser.
type ContentFamily string

const (
	FamilyTabular ContentFamily = "tabular"
	FamilyImage   ContentFamily = "image"
	FamilyPDF     ContentFamily = "pdf"
)

// FamilyForContentType maps MIME content types to their processing family.
var FamilyForContentType = map[string]ContentFamily{
	"application/pdf":          FamilyPDF,
	"image/jpeg":               FamilyImage,
	"image/png":                FamilyImage,
	"text/csv":                 FamilyTabular,
	"application/csv":          FamilyTabular,
	"application/vnd.ms-excel": FamilyTabular,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FamilyTabular,
}

// FamilyForExtension maps file extensions (without dot) to their processing
// family, used as a fallback when the declared content type is missing or
// generic (e.g. application/octet-stream).
var FamilyForExtension = map[string]ContentFamily{
	"pdf":  FamilyPDF,
	"jpg":  FamilyImage,
	"jpeg": FamilyImage,
	"png":  FamilyImage,
	"csv":  FamilyTabular,
	"xls":  FamilyTabular,
	"xlsx": FamilyTabular,
}
