// Package version 빌드 시점에 주입된 버전 메타데이터와 실행 환경 정보를 제공합니다.
//
// 값은 링커 플래그로 주입합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/job-dispatcher/internal/pkg/version.appVersion=v1.0.0"
//
// 주입되지 않은 항목은 debug.ReadBuildInfo의 VCS 정보로 보완하고, 그래도 없으면 "unknown"이 됩니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const unknown = "unknown"

var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = ""
	buildDate     = ""
	buildNumber   = ""
)

var current atomic.Pointer[Info]

// readBuildInfo 테스트에서 교체한다.
var readBuildInfo = debug.ReadBuildInfo

func init() {
	info := resolve(Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	})
	current.Store(&info)
}

// Info 애플리케이션 빌드 정보입니다. /version 응답과 시작 로그에 사용됩니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

// Get 현재 프로세스의 빌드 정보를 반환합니다.
func Get() Info {
	if p := current.Load(); p != nil {
		return *p
	}
	return Info{Version: unknown, Commit: unknown, BuildDate: unknown, BuildNumber: "0"}
}

// resolve 비어 있는 항목을 런타임 정보와 VCS 메타데이터로 채운다.
func resolve(info Info) Info {
	info.GoVersion = runtime.Version()
	info.OS = runtime.GOOS
	info.Arch = runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if isUnset(info.Commit) {
					info.Commit = s.Value
				}
			case "vcs.time":
				if isUnset(info.BuildDate) {
					info.BuildDate = s.Value
				}
			case "vcs.modified":
				info.DirtyBuild = info.DirtyBuild || s.Value == "true"
			}
		}
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}

	if info.Version == "" {
		info.Version = unknown
	}
	if isUnset(info.Commit) {
		info.Commit = unknown
	}
	if info.BuildDate == "" {
		info.BuildDate = unknown
	}
	return info
}

func isUnset(s string) bool {
	return s == "" || s == unknown || s == "none"
}

// ToMap 구조화 로그 필드로 사용할 맵을 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"os":           i.OS,
		"arch":         i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String "v1.0.0+dirty (commit: f25b8bf, build: 12, ...)" 형식의 요약을 반환합니다.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = unknown
	}
	if i.DirtyBuild {
		v += "+dirty"
	}

	var parts []string
	if !isUnset(i.Commit) {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		parts = append(parts, "commit: "+commit)
	}
	if i.BuildNumber != "" {
		parts = append(parts, "build: "+i.BuildNumber)
	}
	if !isUnset(i.BuildDate) {
		parts = append(parts, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		parts = append(parts, "go: "+i.GoVersion)
	}
	if i.OS != "" && i.Arch != "" {
		parts = append(parts, fmt.Sprintf("platform: %s/%s", i.OS, i.Arch))
	}

	if len(parts) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(parts, ", "))
}
