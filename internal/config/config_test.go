// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skaphos/gitbuddy/internal/config"
)

var _ = Describe("Config", func() {
	It("resolves config path from override directory", func() {
		path, err := config.ConfigPath(filepath.Join("C:", "tmp", "gitbuddy"))
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HaveSuffix(filepath.Join("gitbuddy", "config.yaml")))
	})

	It("resolves config path from override file", func() {
		path, err := config.ConfigPath(filepath.Join("C:", "tmp", "config.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HaveSuffix(filepath.Join("tmp", "config.yaml")))
	})

	It("resolves config path from env", func() {
		GinkgoT().Setenv(config.EnvConfig, filepath.Join("C:", "cfg", "config.yaml"))
		path, err := config.ConfigPath("")
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HaveSuffix(filepath.Join("cfg", "config.yaml")))
	})

	It("resolves init path to local dotfile by default", func() {
		dir := GinkgoT().TempDir()
		path, err := config.InitConfigPath("", dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, ".gitbuddy.yaml")))
	})

	It("prefers local dotfile for runtime config resolution", func() {
		dir := GinkgoT().TempDir()
		localPath := filepath.Join(dir, ".gitbuddy.yaml")
		Expect(os.WriteFile(localPath, []byte("exclude: []\n"), 0o644)).To(Succeed())

		path, err := config.ResolveConfigPath("", dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(localPath))
	})

	It("prefers nearer dotfile over farther parent", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, ".gitbuddy.yaml"), []byte("exclude: []\n"), 0o644)).To(Succeed())

		childDir := filepath.Join(dir, "a", "b")
		Expect(os.MkdirAll(childDir, 0o755)).To(Succeed())
		childPath := filepath.Join(childDir, ".gitbuddy.yaml")
		Expect(os.WriteFile(childPath, []byte("exclude: []\n"), 0o644)).To(Succeed())

		nested := filepath.Join(childDir, "c")
		Expect(os.MkdirAll(nested, 0o755)).To(Succeed())

		path, err := config.ResolveConfigPath("", nested)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(childPath))
	})

	It("falls back to global runtime config when local dotfile is absent", func() {
		dir := GinkgoT().TempDir()
		path, err := config.ResolveConfigPath("", dir)
		Expect(err).NotTo(HaveOccurred())

		globalPath, err := config.ConfigPath("")
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(globalPath))
	})

	It("saves and loads config with defaults", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "config.yaml")
		cfg := config.DefaultConfig()
		cfg.Defaults.DefaultBranch = "trunk"
		cfg.LogFile = "logs/gitbuddy.log"

		Expect(config.Save(&cfg, path)).To(Succeed())
		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Defaults.DefaultBranch).To(Equal("trunk"))
		Expect(loaded.Defaults.RemoteName).To(Equal("origin"))
		Expect(loaded.LogFile).To(Equal(filepath.Join(dir, "logs", "gitbuddy.log")))
		Expect(loaded.StageUntracked()).To(BeTrue())
		Expect(loaded.Timeout()).To(Equal(30 * time.Second))
	})

	It("fills zero values from the defaults", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte("defaults:\n  host: git.example.com\n  stage_untracked: false\n"), 0o644)).To(Succeed())

		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.APIVersion).To(Equal(config.ConfigAPIVersion))
		Expect(loaded.Defaults.Host).To(Equal("git.example.com"))
		Expect(loaded.Defaults.TimeoutSeconds).To(Equal(30))
		Expect(loaded.Defaults.CommitMessage).To(Equal(config.DefaultCommitMessage))
		Expect(loaded.StageUntracked()).To(BeFalse())
	})

	It("rejects an unknown kind", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte("apiVersion: skaphos.io/gitbuddy/v1beta1\nkind: Other\n"), 0o644)).To(Succeed())
		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("unsupported config kind")))
	})

	It("returns defaults for a missing file", func() {
		cfg, found, err := config.LoadOrDefault(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		Expect(cfg.Defaults.Host).To(Equal("github.com"))
		Expect(cfg.Exclude).To(ContainElement("**/__pycache__/**"))
	})
})
