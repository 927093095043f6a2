package assets

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	tmpatlas "github.com/gogpu/tmpatlas"
	"github.com/gogpu/tmpatlas/tmp"
)

// Artifact variant tokens.
const (
	VariantSDF    = "SDF"
	VariantRaster = "Raster"
)

// VariantForMode returns the artifact variant token for a wire render mode.
func VariantForMode(mode tmp.Int) string {
	if tmp.IsSDFRenderMode(mode) {
		return VariantSDF
	}
	return VariantRaster
}

// ArtifactPaths returns the three artifact file paths for a font name and
// variant inside dir.
func ArtifactPaths(dir, name, variant string) (recordPath, atlasPath, materialPath string) {
	base := fmt.Sprintf("%s %s", name, variant)
	recordPath = filepath.Join(dir, base+".json")
	atlasPath = filepath.Join(dir, base+" Atlas.png")
	materialPath = filepath.Join(dir, base+" Material.json")
	return recordPath, atlasPath, materialPath
}

// Save writes a synthesized package as the artifact triple in dir. The
// variant is derived from the record's render mode and name is normalized
// first, so saving "MyFont SDF.ttf" produces "MyFont SDF.json" rather than
// a doubled suffix.
func Save(dir, name string, pkg *tmp.FontAssetPackage) error {
	variant := VariantForMode(pkg.Record.AtlasRenderMode)
	base := tmp.NormalizeFontName(name)
	recordPath, atlasPath, materialPath := ArtifactPaths(dir, base, variant)

	if err := writeJSON(recordPath, &pkg.Record); err != nil {
		return err
	}
	if err := imaging.Save(pkg.Atlas, atlasPath); err != nil {
		return fmt.Errorf("assets: write atlas: %w", err)
	}
	if err := writeJSON(materialPath, &pkg.Material); err != nil {
		return err
	}

	tmpatlas.Logger().Info("artifacts saved",
		"record", recordPath,
		"atlas", atlasPath,
		"material", materialPath)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("assets: encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("assets: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// FontAssets is a loaded replacement bundle. Members the search did not
// find stay nil; Normalized is the canonical new-schema form of Record.
type FontAssets struct {
	TTF        []byte
	Record     *tmp.Record
	Normalized *tmp.Record
	Atlas      image.Image
	Material   *tmp.Material
}

// Empty reports whether the search found none of the bundle members.
func (a *FontAssets) Empty() bool {
	return a == nil || (a.TTF == nil && a.Record == nil && a.Atlas == nil && a.Material == nil)
}

// NameCandidates expands a normalized font name into the artifact base
// names tried during loading, in priority order. A name with an explicit
// variant suffix is tried first as given, then bare, then with the
// opposite variant; a bare name fans out to both variants. Comparison is
// case-preserving but duplicates are folded case-insensitively.
func NameCandidates(name string) []string {
	raw := strings.TrimSpace(name)
	base := strings.TrimSuffix(strings.TrimSuffix(raw, " "+VariantSDF), " "+VariantRaster)

	var candidates []string
	switch {
	case strings.HasSuffix(raw, " "+VariantSDF):
		candidates = []string{raw, base, base + " " + VariantRaster}
	case strings.HasSuffix(raw, " "+VariantRaster):
		candidates = []string{raw, base, base + " " + VariantSDF}
	default:
		candidates = []string{raw, base + " " + VariantSDF, base + " " + VariantRaster}
	}
	return dedupeFold(candidates)
}

func dedupeFold(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// Load resolves fontName to an artifact bundle in dir. The name is
// normalized, expanded to candidates, and each member is loaded from the
// first candidate whose file exists: font data from "<name>.ttf" or
// "<name>.otf", the record from "<name>.json", the atlas from
// "<name> Atlas.png", and the material from "<name> Material.json".
//
// Missing files leave the member nil; a file that exists but cannot be
// read or parsed fails the load.
func Load(dir, fontName string) (*FontAssets, error) {
	normalized := tmp.NormalizeFontName(fontName)
	candidates := NameCandidates(normalized)

	baseName := strings.TrimSuffix(strings.TrimSuffix(normalized, " "+VariantSDF), " "+VariantRaster)
	fontCandidates := dedupeFold(append([]string{normalized, baseName}, candidates...))

	out := &FontAssets{}

	for _, name := range fontCandidates {
		found := false
		for _, ext := range []string{".ttf", ".otf"} {
			path := filepath.Join(dir, name+ext)
			data, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("assets: read font: %w", err)
			}
			out.TTF = data
			found = true
			break
		}
		if found {
			break
		}
	}

	for _, name := range candidates {
		path := filepath.Join(dir, name+".json")
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("assets: read record: %w", err)
		}
		var rec tmp.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("assets: parse %s: %w", filepath.Base(path), err)
		}
		out.Record = &rec
		out.Normalized = tmp.Normalize(&rec)
		break
	}

	for _, name := range candidates {
		path := filepath.Join(dir, name+" Atlas.png")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("assets: open atlas: %w", err)
		}
		out.Atlas = img
		break
	}

	for _, name := range candidates {
		path := filepath.Join(dir, name+" Material.json")
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("assets: read material: %w", err)
		}
		var mat tmp.Material
		if err := json.Unmarshal(data, &mat); err != nil {
			return nil, fmt.Errorf("assets: parse %s: %w", filepath.Base(path), err)
		}
		out.Material = &mat
		break
	}

	if out.Empty() {
		tmpatlas.Logger().Debug("no artifacts found", "dir", dir, "name", normalized)
	}
	return out, nil
}
