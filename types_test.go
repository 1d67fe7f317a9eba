package xml2doc

import (
	"errors"
	"testing"
)

func TestPageSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{
			name: "nil is valid",
			page: nil,
		},
		{
			name: "defaults are valid",
			page: DefaultPageSettings(),
		},
		{
			name: "letter landscape",
			page: &PageSettings{Size: "letter", Orientation: "landscape", Margin: 1},
		},
		{
			name: "uppercase size accepted",
			page: &PageSettings{Size: "A4", Orientation: "Portrait", Margin: 0.5},
		},
		{
			name:    "unknown size",
			page:    &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "unknown orientation",
			page:    &PageSettings{Size: "a4", Orientation: "sideways", Margin: 0.5},
			wantErr: ErrInvalidOrientation,
		},
		{
			name:    "margin below minimum",
			page:    &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.1},
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "margin above maximum",
			page:    &PageSettings{Size: "a4", Orientation: "portrait", Margin: 4},
			wantErr: ErrInvalidMargin,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFooterValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		footer  *Footer
		wantErr error
	}{
		{name: "nil is valid", footer: nil},
		{name: "empty position defaults", footer: &Footer{ShowPageNumber: true}},
		{name: "left", footer: &Footer{Position: "left"}},
		{name: "center", footer: &Footer{Position: "center"}},
		{name: "right", footer: &Footer{Position: "right"}},
		{name: "mixed case", footer: &Footer{Position: "Center"}},
		{
			name:    "unknown position",
			footer:  &Footer{Position: "top"},
			wantErr: ErrInvalidFooterPosition,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.footer.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTOCValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		toc     *TOC
		wantErr error
	}{
		{name: "nil is valid", toc: nil},
		{name: "zero depth uses default", toc: &TOC{}},
		{name: "depth in range", toc: &TOC{MaxDepth: 2}},
		{name: "minimum depth", toc: &TOC{MaxDepth: MinTOCDepth}},
		{name: "maximum depth", toc: &TOC{MaxDepth: MaxTOCDepth}},
		{name: "negative depth", toc: &TOC{MaxDepth: -1}, wantErr: ErrInvalidTOCDepth},
		{name: "depth too large", toc: &TOC{MaxDepth: 4}, wantErr: ErrInvalidTOCDepth},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.toc.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackLinkValidate(t *testing.T) {
	t.Parallel()

	if err := (&BackLink{URL: "../index.html"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	var nilLink *BackLink
	if err := nilLink.Validate(); err != nil {
		t.Errorf("nil Validate() error = %v, want nil", err)
	}
	if err := (&BackLink{Label: "Back"}).Validate(); !errors.Is(err, ErrInvalidBackLink) {
		t.Errorf("Validate() error = %v, want ErrInvalidBackLink", err)
	}
}
