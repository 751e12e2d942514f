package model_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skaphos/gitbuddy/internal/model"
)

var _ = Describe("ChangeSet", func() {
	It("is empty when nothing was classified", func() {
		Expect(model.ChangeSet{}.Empty()).To(BeTrue())
		Expect(model.ChangeSet{}.Changed()).To(BeEmpty())
	})

	It("lists new before modified and leaves deletions out of Changed", func() {
		cs := model.ChangeSet{
			New:      []string{"a.txt"},
			Modified: []string{"b.txt", "c.txt"},
			Deleted:  []string{"gone.txt"},
		}
		Expect(cs.Len()).To(Equal(4))
		Expect(cs.Changed()).To(Equal([]string{"a.txt", "b.txt", "c.txt"}))
	})

	It("serializes with snake case keys", func() {
		data, err := json.Marshal(model.ChangeSet{New: []string{"x"}})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"new":["x"]`))
	})
})

var _ = Describe("RemoteTarget", func() {
	It("copies on WithBranch", func() {
		base := model.RemoteTarget{URL: "https://github.com/octo/cat.git", Owner: "octo", Repo: "cat"}
		moved := base.WithBranch(" trunk ")
		Expect(moved.Branch).To(Equal("trunk"))
		Expect(base.Branch).To(BeEmpty())
	})
})

var _ = Describe("Paths", func() {
	It("keeps listing order", func() {
		Expect(model.Paths([]model.FileEntry{{Path: "b"}, {Path: "a"}})).To(Equal([]string{"b", "a"}))
	})
})
