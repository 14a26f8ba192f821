package app

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"my_l2d/internal/wavfile"
)

func TestBundledResources(t *testing.T) {
	fsys := os.DirFS("../resources")

	for _, name := range []string{BackImageName, GearImageName, PowerImageName} {
		_, err := LoadFileAsBytes(fsys, name)
		require.NoError(t, err)
	}

	for _, dir := range ModelDir {
		data, err := LoadFileAsBytes(fsys, path.Join(dir, dir+".model.json"))
		require.NoError(t, err)
		setting, err := ParseModelSetting(data)
		require.NoError(t, err)

		data, err = LoadFileAsBytes(fsys, path.Join(dir, setting.Atlas))
		require.NoError(t, err)
		atlas, err := ParseAtlas(string(data))
		require.NoError(t, err)

		_, err = LoadFileAsBytes(fsys, path.Join(dir, atlas.Header.Image))
		require.NoError(t, err)

		for _, part := range setting.Parts {
			item, ok := atlas.Item(part.Region)
			require.True(t, ok, part.Region)
			require.LessOrEqual(t, item.X+item.W, atlas.Header.W)
			require.LessOrEqual(t, item.Y+item.H, atlas.Header.H)
		}

		require.NotZero(t, setting.MotionCount(MotionGroupIdle))
		for _, motions := range setting.Motions {
			for _, motion := range motions {
				if motion.Sound == "" {
					continue
				}
				h := wavfile.NewHandler(fsys)
				require.NoError(t, h.Start(path.Join(dir, motion.Sound)))
			}
		}
	}
}
