package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, VersionStage, info.Stage)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, APIVersion, info.APIVersion)
}

func TestVersionStrings(t *testing.T) {
	assert.Equal(t, "SalaryLens v"+Version, GetVersionString())
	assert.Contains(t, GetFullVersionString(), "commit: "+GitCommit)
	assert.True(t, IsStable())
}
