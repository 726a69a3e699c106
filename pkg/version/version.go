// Package version reports the build metadata of the binary. GitTag and
// GitBranch are set with -ldflags at build time.
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Source    string `json:"source,omitempty"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	GitTag    string
	GitBranch string
)

const (
	devVersion = "dev"
	hashLen    = 12
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or abbreviated revision of the build, in
// that order of preference
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := settings()["vcs.revision"]; hash != "" {
		return abbrev(hash)
	}
	return devVersion
}

// Get returns the build metadata for the named executable
func Get(name string) Info {
	info := Info{
		Name:     name,
		Version:  Version(),
		Tag:      GitTag,
		Branch:   GitBranch,
		Compiler: runtime.Version(),
	}
	if build, ok := debug.ReadBuildInfo(); ok {
		info.Source = build.Main.Path
	}
	s := settings()
	info.Hash = s["vcs.revision"]
	info.BuildTime = s["vcs.time"]
	info.Modified = s["vcs.modified"] == "true"
	if s["GOOS"] != "" && s["GOARCH"] != "" {
		info.Platform = s["GOOS"] + "/" + s["GOARCH"]
	}
	return info
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (info Info) String() string {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func settings() map[string]string {
	result := make(map[string]string)
	if build, ok := debug.ReadBuildInfo(); ok {
		for _, s := range build.Settings {
			result[s.Key] = s.Value
		}
	}
	return result
}

func abbrev(hash string) string {
	if len(hash) > hashLen {
		return hash[:hashLen]
	}
	return hash
}
