package app

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

type TextureInfo struct {
	ID       uint32
	Width    int
	Height   int
	FileName string
	Image    *ebiten.Image
}

// TextureManager loads png textures once and hands out the cached copy on
// every later request for the same file.
type TextureManager struct {
	fsys     fs.FS
	logger   *slog.Logger
	textures []*TextureInfo
	nextID   uint32

	newImage func(img image.Image) *ebiten.Image
}

func NewTextureManager(fsys fs.FS, logger *slog.Logger) *TextureManager {
	return &TextureManager{fsys: fsys, logger: logger, newImage: ebiten.NewImageFromImage}
}

func (m *TextureManager) CreateTextureFromPNG(fileName string) (*TextureInfo, error) {
	for _, info := range m.textures {
		if info.FileName == fileName {
			return info, nil
		}
	}

	data, err := LoadFileAsBytes(m.fsys, fileName)
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", fileName, err)
	}

	m.nextID++
	bound := img.Bounds()
	info := &TextureInfo{
		ID:       m.nextID,
		Width:    bound.Dx(),
		Height:   bound.Dy(),
		FileName: fileName,
		Image:    m.newImage(img),
	}
	m.textures = append(m.textures, info)

	m.logger.Debug("Texture loaded",
		slog.String("file", fileName),
		slog.Int("width", info.Width),
		slog.Int("height", info.Height))

	return info, nil
}

func (m *TextureManager) TextureByID(id uint32) (*TextureInfo, bool) {
	for _, info := range m.textures {
		if info.ID == id {
			return info, true
		}
	}
	return nil, false
}

func (m *TextureManager) ReleaseTexture(id uint32) {
	m.release(func(info *TextureInfo) bool { return info.ID == id })
}

func (m *TextureManager) ReleaseTextureByName(fileName string) {
	m.release(func(info *TextureInfo) bool { return info.FileName == fileName })
}

func (m *TextureManager) ReleaseTextures() {
	m.release(func(*TextureInfo) bool { return true })
}

func (m *TextureManager) release(match func(*TextureInfo) bool) {
	kept := m.textures[:0]
	for _, info := range m.textures {
		if !match(info) {
			kept = append(kept, info)
			continue
		}
		if info.Image != nil {
			info.Image.Deallocate()
		}
	}
	clear(m.textures[len(kept):])
	m.textures = kept
}
