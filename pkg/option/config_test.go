// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package option

import (
	"os"
	"path/filepath"
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/cilium/ipcolumn/pkg/logging"
)

func TestGetEnvName(t *testing.T) {
	tests := []struct {
		name   string
		option string
		want   string
	}{
		{
			name:   "Normal option",
			option: "foo",
			want:   "IPCOLUMN_FOO",
		},
		{
			name:   "Capital option",
			option: "FOO",
			want:   "IPCOLUMN_FOO",
		},
		{
			name:   "mix numbers small letters and dashes",
			option: "22ada2------2",
			want:   "IPCOLUMN_22ADA2______2",
		},
		{
			name:   "normal option",
			option: FactorizeNASentinel,
			want:   "IPCOLUMN_FACTORIZE_NA_SENTINEL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, getEnvName(tt.option))
		})
	}
}

func TestPopulateDefaults(t *testing.T) {
	def := DefaultConfig()

	fs := flag.NewFlagSet("defaults", flag.ContinueOnError)
	def.Flags(fs)
	vp := viper.New()
	require.NoError(t, vp.BindPFlags(fs))

	c := &ColumnConfig{}
	require.NoError(t, c.Populate(vp))
	require.Equal(t, def, c)
}

func TestPopulateFromFlags(t *testing.T) {
	fs := flag.NewFlagSet("flags", flag.ContinueOnError)
	DefaultConfig().Flags(fs)
	require.NoError(t, fs.Parse([]string{
		"--strict-networks=false",
		"--factorize-na-sentinel=-2",
		"--partition-workers=3",
		"--log-file=/var/log/ipcolumn.log",
		"--debug",
	}))
	vp := viper.New()
	require.NoError(t, vp.BindPFlags(fs))

	c := &ColumnConfig{}
	require.NoError(t, c.Populate(vp))
	require.False(t, c.StrictNetworks)
	require.Equal(t, -2, c.FactorizeNASentinel)
	require.Equal(t, 3, c.PartitionWorkers)
	require.True(t, c.Debug)
	require.Equal(t, "/var/log/ipcolumn.log", c.LogOptions()[logging.FileOpt])
	require.NotContains(t, DefaultConfig().LogOptions(), logging.FileOpt)
}

func TestPopulateFromEnv(t *testing.T) {
	t.Setenv("IPCOLUMN_PARTITION_WORKERS", "7")

	fs := flag.NewFlagSet("env", flag.ContinueOnError)
	DefaultConfig().Flags(fs)
	vp := viper.New()
	require.NoError(t, vp.BindPFlags(fs))
	BindEnv(vp)

	c := &ColumnConfig{}
	require.NoError(t, c.Populate(vp))
	require.Equal(t, 7, c.PartitionWorkers)
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())

	c.FactorizeNASentinel = 0
	require.Error(t, c.Validate())

	c = DefaultConfig()
	c.PartitionWorkers = 0
	require.Error(t, c.Validate())
}

func TestReadDirConfig(t *testing.T) {
	dirName := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirName, StrictNetworks), []byte("false\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dirName, PartitionWorkers), []byte("2"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dirName, "subdir"), 0755))

	m, err := ReadDirConfig(dirName)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		StrictNetworks:   "false",
		PartitionWorkers: "2",
	}, m)

	fs := flag.NewFlagSet("dir", flag.ContinueOnError)
	DefaultConfig().Flags(fs)
	vp := viper.New()
	require.NoError(t, vp.BindPFlags(fs))
	require.NoError(t, MergeConfig(vp, m))

	c := &ColumnConfig{}
	require.NoError(t, c.Populate(vp))
	require.False(t, c.StrictNetworks)
	require.Equal(t, 2, c.PartitionWorkers)

	m, err = ReadDirConfig(filepath.Join(dirName, "missing"))
	require.NoError(t, err)
	require.Empty(t, m)
}
