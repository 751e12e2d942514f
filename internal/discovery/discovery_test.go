package discovery_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skaphos/gitbuddy/internal/discovery"
	"github.com/skaphos/gitbuddy/internal/model"
)

func writeFile(root, rel, content string) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
}

var _ = Describe("Discovery", func() {
	It("matches exclude patterns", func() {
		Expect(discovery.MatchesExclude("pkg/__pycache__/mod.pyc", discovery.DefaultExclude)).To(BeTrue())
		Expect(discovery.MatchesExclude("__pycache__", discovery.DefaultExclude)).To(BeTrue())
		Expect(discovery.MatchesExclude("src/main.go", discovery.DefaultExclude)).To(BeFalse())
		Expect(discovery.MatchesExclude("src/main.go", nil)).To(BeFalse())
	})

	It("lists regular files sorted, skipping hidden and excluded entries", func() {
		root := GinkgoT().TempDir()
		writeFile(root, "b.txt", "bb")
		writeFile(root, "a/c.go", "package a")
		writeFile(root, ".git/HEAD", "ref: refs/heads/main")
		writeFile(root, ".env", "SECRET=1")
		writeFile(root, "a/.hidden/x", "x")
		writeFile(root, "tool/__pycache__/m.pyc", "")
		writeFile(root, "m.pyc", "")
		writeFile(root, "node_modules/left-pad/index.js", "")

		files, err := discovery.ListFiles(context.Background(), discovery.Options{
			Root:    root,
			Exclude: discovery.DefaultExclude,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(files).To(Equal([]model.FileEntry{
			{Path: "a/c.go", Size: 9},
			{Path: "b.txt", Size: 2},
		}))
	})

	It("returns nothing for an empty directory", func() {
		files, err := discovery.ListFiles(context.Background(), discovery.Options{Root: GinkgoT().TempDir()})
		Expect(err).NotTo(HaveOccurred())
		Expect(files).To(BeEmpty())
	})

	It("stops when the context is cancelled", func() {
		root := GinkgoT().TempDir()
		writeFile(root, "a.txt", "a")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := discovery.ListFiles(ctx, discovery.Options{Root: root})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("skips directories it cannot read", func() {
		if os.Geteuid() == 0 {
			Skip("permissions are not enforced for root")
		}
		root := GinkgoT().TempDir()
		writeFile(root, "a.txt", "a")
		writeFile(root, "locked/b.txt", "b")
		locked := filepath.Join(root, "locked")
		Expect(os.Chmod(locked, 0o000)).To(Succeed())
		DeferCleanup(os.Chmod, locked, os.FileMode(0o755))

		files, err := discovery.ListFiles(context.Background(), discovery.Options{Root: root})
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Paths(files)).To(Equal([]string{"a.txt"}))
	})

	It("fails for a missing root", func() {
		_, err := discovery.ListFiles(context.Background(), discovery.Options{Root: "/nonexistent/path/xyz"})
		Expect(err).To(HaveOccurred())
	})
})
