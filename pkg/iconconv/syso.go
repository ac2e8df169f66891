package iconconv

import (
	"bytes"
	"image"

	"github.com/pkg/errors"
	"github.com/tc-hib/winres"
)

// DefaultArch is the target architecture of a .syso written without Options.Arch.
const DefaultArch = "amd64"

// iconResourceName is the resource name under which the icon group is stored.
// Windows Explorer shows the first icon group of an executable.
var iconResourceName = winres.Name("APP")

var arches = map[string]winres.Arch{
	"amd64": winres.ArchAMD64,
	"386":   winres.ArchI386,
	"arm":   winres.ArchARM,
	"arm64": winres.ArchARM64,
}

// Arches returns the architecture names accepted by Options.Arch.
func Arches() []string {
	return []string{"386", "amd64", "arm", "arm64"}
}

// parseArch maps a GOARCH name to its resource architecture. Names are
// matched exactly, like GOARCH itself.
func parseArch(name string) (winres.Arch, error) {
	if name == "" {
		name = DefaultArch
	}
	arch, ok := arches[name]
	if !ok {
		return arch, errors.Errorf("unsupported architecture %q", name)
	}
	return arch, nil
}

// buildSyso returns a COFF object carrying the variants as the application
// icon. Placing it next to a main package makes go build link it in.
func buildSyso(archName string, variants []*Variant) ([]byte, error) {
	arch, err := parseArch(archName)
	if err != nil {
		return nil, err
	}

	images := make([]image.Image, 0, len(variants))
	for _, v := range variants {
		images = append(images, v.Image)
	}
	icon, err := winres.NewIconFromImages(images)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build icon resource")
	}

	rs := &winres.ResourceSet{}
	if err := rs.SetIcon(iconResourceName, icon); err != nil {
		return nil, errors.Wrap(err, "failed to set icon resource")
	}

	var buf bytes.Buffer
	if err := rs.WriteObject(&buf, arch); err != nil {
		return nil, errors.Wrap(err, "failed to write resource object")
	}
	return buf.Bytes(), nil
}
