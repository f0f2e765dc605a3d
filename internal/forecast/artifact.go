package forecast

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"foodshare-backend/internal/models"
)

// ModelSet üç yemeğin modelleri. Yüklendikten sonra değiştirilmez.
type ModelSet map[models.Dish]*Model

// ArtifactPath bir yemeğin model dosyasının yolu: <dir>/<dish>_model.json
func ArtifactPath(dir string, d models.Dish) string {
	return filepath.Join(dir, string(d)+"_model.json")
}

// SaveModels her modeli önce geçici dosyaya yazar, sonra yerine taşır; yarım
// yazılmış bir model dosyası servis tarafından okunmaz.
func SaveModels(dir string, set ModelSet) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("model klasörü oluşturulamadı: %w", err)
	}

	paths := make([]string, 0, len(models.Dishes))
	for _, d := range models.Dishes {
		m, ok := set[d]
		if !ok {
			return nil, fmt.Errorf("%s modeli eksik", d)
		}

		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%s modeli serileştirilemedi: %w", d, err)
		}

		path := ArtifactPath(dir, d)
		tmp, err := os.CreateTemp(dir, string(d)+"_model-*.tmp")
		if err != nil {
			return nil, err
		}
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return nil, fmt.Errorf("%s modeli yazılamadı: %w", d, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return nil, err
		}
		if err := os.Rename(tmp.Name(), path); err != nil {
			os.Remove(tmp.Name())
			return nil, fmt.Errorf("%s modeli taşınamadı: %w", d, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// LoadModels üç model dosyasını da okur; herhangi biri eksik ya da bozuksa hata döner.
func LoadModels(dir string) (ModelSet, error) {
	set := make(ModelSet, len(models.Dishes))
	for _, d := range models.Dishes {
		path := ArtifactPath(dir, d)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("model dosyası okunamadı (%s): %w", path, err)
		}

		var m Model
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("model dosyası çözümlenemedi (%s): %w", path, err)
		}
		if m.Dish != d {
			return nil, fmt.Errorf("%s dosyası %q modelini içeriyor", path, m.Dish)
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		set[d] = &m
	}
	return set, nil
}
