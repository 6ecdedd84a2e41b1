package decl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string // substring of the error, "" for valid
	}{
		{"valid", `{"columns": [{}], "rows": [{"cells": [{"text": "x"}]}]}`, ""},
		{"no columns", `{"columns": [], "rows": [{"cells": []}]}`, "columns"},
		{"no rows", `{"columns": [{}]}`, "rows"},
		{"bad column mode", `{"columns": [{"sizing": {"mode": "auto"}}], "rows": [{"cells": []}]}`, "columns[0].sizing.mode"},
		{"negative width", `{"columns": [{"sizing": {"mode": "fixed", "width": -1}}], "rows": [{"cells": []}]}`, "columns[0].sizing.width"},
		{"negative factor", `{"columns": [{"sizing": {"factor": -2}}], "rows": [{"cells": []}]}`, "factor"},
		{"bad row mode", `{"columns": [{}], "rows": [{"sizing": {"mode": "stretch"}, "cells": []}]}`, "rows[0].sizing.mode"},
		{"negative ratio", `{"columns": [{}], "rows": [{"sizing": {"mode": "ratio", "ratio": -1}, "cells": []}]}`, "ratio"},
		{"negative span", `{"columns": [{}], "rows": [{"cells": [{"colSpan": -1}]}]}`, "rows[0].cells[0].colSpan"},
		{"bad color", `{"columns": [{}], "rows": [{"cells": [{"color": "chartreuse-ish"}]}]}`, "rows[0].cells[0].color"},
		{"bad background", `{"style": {"background": "#12"}, "columns": [{}], "rows": [{"cells": []}]}`, "style.background"},
		{"bad alignment", `{"columns": [{"style": {"alignment": "middle"}}], "rows": [{"cells": []}]}`, "columns[0].style.alignment"},
		{"negative padding", `{"columns": [{}], "rows": [{"style": {"padding": {"all": -1}}, "cells": []}]}`, "padding.all"},
		{"negative border", `{"columns": [{}], "rows": [{"cells": [{"style": {"border": {"top": {"width": -1}}}}]}]}`, "border.top.width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.json))
			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDeclaration), "error %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateNil(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrInvalidDeclaration)
}
