package app

import (
	stringsext "github.com/rpezzi/pipelint/extensions/strings"
	"github.com/rpezzi/pipelint/internal/extension"
)

// builtinExtensions returns the extensions compiled into the binary.
func builtinExtensions() []extension.Extension {
	return []extension.Extension{
		stringsext.New(),
	}
}
