package sysprefs

import "fmt"

// Rect is a window's bounding rectangle in screen points.
type Rect struct {
	X      int `json:"x"      yaml:"x"`
	Y      int `json:"y"      yaml:"y"`
	Width  int `json:"width"  yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// File is a location on disk, passed to commands as a Path.
type File string

func (f File) targetExpr() string { return string(pathExpr(string(f))) }

// Target is anything a print command accepts: an object handle or a File.
type Target interface {
	targetExpr() string
}

// Handle is a typed reference to an object in the target application.
type Handle interface {
	Target
	Class() Class
	Reference() Reference
	Supports(op Op) bool
	locate() *specifier
}

// PrintSettings is the standard suite's print settings record. Zero fields
// are left for the target to default.
type PrintSettings struct {
	Copies        int
	Collating     *bool
	StartingPage  int
	EndingPage    int
	PagesAcross   int
	PagesDown     int
	ErrorHandling PrintErrorHandling
	FaxNumber     string
	TargetPrinter string
}

var printSettingKeys = []string{
	"copies", "collating", "startingPage", "endingPage", "pagesAcross", "pagesDown",
	"errorHandling", "faxNumber", "targetPrinter",
}

// record renders the settings as a withProperties parameter.
func (s *PrintSettings) record(op Op) (string, error) {
	vals := map[string]any{}
	if s == nil {
		return jsRecord(printSettingKeys, vals), nil
	}
	positive := func(name string, v int) error {
		if v < 0 {
			return malformed(op, "%s must not be negative, got %d", name, v)
		}
		if v > 0 {
			vals[name] = v
		}
		return nil
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"copies", s.Copies},
		{"startingPage", s.StartingPage},
		{"endingPage", s.EndingPage},
		{"pagesAcross", s.PagesAcross},
		{"pagesDown", s.PagesDown},
	} {
		if err := positive(f.name, f.v); err != nil {
			return "", err
		}
	}
	if s.StartingPage > 0 && s.EndingPage > 0 && s.EndingPage < s.StartingPage {
		return "", malformed(op, "ending page %d is before starting page %d", s.EndingPage, s.StartingPage)
	}
	if s.Collating != nil {
		vals["collating"] = *s.Collating
	}
	if s.ErrorHandling != 0 {
		kw, ok := s.ErrorHandling.Keyword()
		if !ok {
			return "", malformed(op, "unknown error handling %s", s.ErrorHandling)
		}
		vals["errorHandling"] = kw
	}
	if s.FaxNumber != "" {
		vals["faxNumber"] = s.FaxNumber
	}
	if s.TargetPrinter != "" {
		vals["targetPrinter"] = s.TargetPrinter
	}
	return jsRecord(printSettingKeys, vals), nil
}

func printParams(op Op, settings *PrintSettings, dialog bool) (string, error) {
	rec, err := settings.record(op)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("{ withProperties: %s, printDialog: %t }", rec, dialog), nil
}

func closeParams(op Op, saving SaveOption, savingIn File) (string, error) {
	kw, ok := saving.Keyword()
	if !ok {
		return "", malformed(op, "unknown save option %s", saving)
	}
	vals := map[string]any{"saving": kw}
	if savingIn != "" {
		vals["savingIn"] = pathExpr(string(savingIn))
	}
	return jsRecord([]string{"saving", "savingIn"}, vals), nil
}
