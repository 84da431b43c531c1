package systems

import (
	"fmt"

	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/shared/scenedata"
	"github.com/quasilyte/gdata"
	"github.com/vmihailenco/msgpack/v5"
)

// SaveStore is the slot storage behind scene saves. *gdata.Manager
// satisfies it.
type SaveStore interface {
	SaveItem(key string, data []byte) error
	LoadItem(key string) ([]byte, error)
}

const saveKeyPrefix = "scene_"

// OpenSaveStore opens the per-user gdata store for appName.
func OpenSaveStore(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		logger.For("persistence").WithError(err).Warn("Could not initialize persistence")
		return nil, err
	}
	return m, nil
}

// SaveSceneSlot encodes s with msgpack into slot.
func SaveSceneSlot(store SaveStore, slot string, s *scenedata.Scene) error {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := store.SaveItem(saveKeyPrefix+slot, data); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// LoadSceneSlot decodes the scene saved in slot. It returns nil, nil when
// the slot is empty.
func LoadSceneSlot(store SaveStore, slot string) (*scenedata.Scene, error) {
	data, err := store.LoadItem(saveKeyPrefix + slot)
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var s scenedata.Scene
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", slot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// HasSceneSlot reports whether slot holds a save.
func HasSceneSlot(store SaveStore, slot string) bool {
	data, err := store.LoadItem(saveKeyPrefix + slot)
	return err == nil && len(data) > 0
}

// ClearSceneSlot empties slot.
func ClearSceneSlot(store SaveStore, slot string) error {
	if err := store.SaveItem(saveKeyPrefix+slot, nil); err != nil {
		return fmt.Errorf("clear slot %s: %w", slot, err)
	}
	return nil
}
