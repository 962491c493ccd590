package strategy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"quantmon/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Profile 一组可直接提交回测的命名预设。
type Profile struct {
	Name           string         `yaml:"name" json:"name"`
	Description    string         `yaml:"description" json:"description,omitempty"`
	Strategy       string         `yaml:"strategy" json:"strategy"`
	Symbol         string         `yaml:"symbol" json:"symbol"`
	StartDate      string         `yaml:"start_date" json:"start_date"`
	EndDate        string         `yaml:"end_date" json:"end_date"`
	Adjust         string         `yaml:"adjust" json:"adjust,omitempty"`
	InitialCapital float64        `yaml:"initial_capital" json:"initial_capital,omitempty"`
	Params         map[string]any `yaml:"params" json:"params,omitempty"`
}

type profileFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// ProfileSnapshot 某一时刻的预设集合。
type ProfileSnapshot struct {
	Version  int64
	LoadedAt time.Time
	Profiles map[string]Profile
}

// ProfileListener 在预设重载后触发。
type ProfileListener func(ProfileSnapshot)

// profileSchema 校验单个预设的结构。
const profileSchema = `{
  "type": "object",
  "required": ["strategy", "symbol", "start_date", "end_date"],
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "strategy": {"type": "string", "minLength": 1},
    "symbol": {"type": "string", "pattern": "^[A-Za-z]{0,2}[0-9]{6}$"},
    "start_date": {"type": "string", "pattern": "^[0-9]{8}$"},
    "end_date": {"type": "string", "pattern": "^[0-9]{8}$"},
    "adjust": {"enum": ["qfq", "hfq", ""]},
    "initial_capital": {"type": "number", "exclusiveMinimum": 0},
    "params": {"type": "object"}
  }
}`

// ProfileRegistry 从 YAML 读取回测预设，监听文件变更热加载。
type ProfileRegistry struct {
	path   string
	v      *viper.Viper
	schema *jsonschema.Schema

	mu        sync.RWMutex
	snapshot  ProfileSnapshot
	listeners []ProfileListener
}

// NewProfileRegistry 读取预设文件并开始监听更新。
func NewProfileRegistry(path string) (*ProfileRegistry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("profile registry requires path")
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.json", strings.NewReader(profileSchema)); err != nil {
		return nil, err
	}
	schema, err := compiler.Compile("profile.json")
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read profiles failed: %w", err)
	}
	r := &ProfileRegistry{path: path, v: v, schema: schema}
	if err := r.reload(); err != nil {
		return nil, err
	}
	v.OnConfigChange(func(evt fsnotify.Event) {
		if err := r.reload(); err != nil {
			logger.Errorf("预设重载失败: %v", err)
			return
		}
		r.notifyListeners()
	})
	v.WatchConfig()
	return r, nil
}

// Snapshot 返回当前预设集合的拷贝。
func (r *ProfileRegistry) Snapshot() ProfileSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProfileSnapshot(r.snapshot)
}

// Profile 按名字查找预设。
func (r *ProfileRegistry) Profile(name string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.snapshot.Profiles[strings.TrimSpace(name)]
	return p, ok
}

// OnChange 注册变更回调。
func (r *ProfileRegistry) OnChange(fn ProfileListener) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

func (r *ProfileRegistry) reload() error {
	file, err := readProfileFile(r.path)
	if err != nil {
		return err
	}
	profiles := make(map[string]Profile, len(file.Profiles))
	for name, p := range file.Profiles {
		if p.Name == "" {
			p.Name = strings.TrimSpace(name)
		}
		if err := r.validateProfile(p); err != nil {
			return fmt.Errorf("预设 %s 非法: %w", p.Name, err)
		}
		profiles[p.Name] = p
	}
	r.mu.Lock()
	r.snapshot = ProfileSnapshot{
		Version:  r.snapshot.Version + 1,
		LoadedAt: time.Now(),
		Profiles: profiles,
	}
	r.mu.Unlock()
	logger.Infof("已从 %s 加载 %d 个回测预设", filepath.Base(r.path), len(profiles))
	return nil
}

func (r *ProfileRegistry) validateProfile(p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return r.schema.Validate(doc)
}

func (r *ProfileRegistry) notifyListeners() {
	r.mu.RLock()
	snap := cloneProfileSnapshot(r.snapshot)
	listeners := append([]ProfileListener(nil), r.listeners...)
	r.mu.RUnlock()
	for _, fn := range listeners {
		go func(cb ProfileListener) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorf("预设回调 panic: %v", rec)
				}
			}()
			cb(snap)
		}(fn)
	}
}

func cloneProfileSnapshot(src ProfileSnapshot) ProfileSnapshot {
	dst := ProfileSnapshot{
		Version:  src.Version,
		LoadedAt: src.LoadedAt,
		Profiles: make(map[string]Profile, len(src.Profiles)),
	}
	for name, p := range src.Profiles {
		dst.Profiles[name] = p
	}
	return dst
}

func readProfileFile(path string) (profileFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return profileFile{}, fmt.Errorf("read profiles failed: %w", err)
	}
	var file profileFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return profileFile{}, fmt.Errorf("parse profiles failed: %w", err)
	}
	return file, nil
}
