package selection_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skaphos/gitbuddy/internal/model"
	"github.com/skaphos/gitbuddy/internal/selection"
)

func listing(paths ...string) []model.FileEntry {
	out := make([]model.FileEntry, 0, len(paths))
	for _, p := range paths {
		out = append(out, model.FileEntry{Path: p})
	}
	return out
}

var _ = Describe("ParseMode", func() {
	DescribeTable("maps input",
		func(input string, expected selection.Mode) {
			mode, err := selection.ParseMode(input, selection.ChangedOnly)
			Expect(err).NotTo(HaveOccurred())
			Expect(mode).To(Equal(expected))
		},
		Entry("empty uses fallback", "", selection.ChangedOnly),
		Entry("a", "a", selection.All),
		Entry("ALL", "ALL", selection.All),
		Entry("c", "c", selection.ChangedOnly),
		Entry("select", "select", selection.Manual),
		Entry("s", " s ", selection.Manual),
	)

	It("rejects unknown modes", func() {
		_, err := selection.ParseMode("everything", selection.All)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Select", func() {
	It("returns the full listing for All", func() {
		files := listing("a", "b", "c")
		Expect(selection.Select("/unused", files, model.ChangeSet{}, selection.All)).To(Equal([]string{"a", "b", "c"}))
	})

	It("returns existing new and modified files for ChangedOnly", func() {
		root := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(root, "new.txt"), []byte("n"), 0o644)).To(Succeed())
		Expect(os.MkdirAll(filepath.Join(root, "src"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "src", "mod.go"), []byte("m"), 0o644)).To(Succeed())

		changes := model.ChangeSet{
			New:      []string{"new.txt", "vanished.txt"},
			Modified: []string{"src/mod.go"},
			Deleted:  []string{"old.txt"},
		}
		got := selection.Select(root, listing("new.txt", "src/mod.go", "other.txt"), changes, selection.ChangedOnly)
		Expect(got).To(Equal([]string{"new.txt", "src/mod.go"}))
	})
})

var _ = Describe("Picker", func() {
	var picker *selection.Picker

	BeforeEach(func() {
		picker = selection.NewPicker(listing("one", "two", "three", "four", "five"))
	})

	It("deduplicates while keeping first-seen order", func() {
		reports := picker.Add("1,3,5,3")
		Expect(picker.Indices()).To(Equal([]int{1, 3, 5}))
		Expect(picker.Paths()).To(Equal([]string{"one", "three", "five"}))
		Expect(reports).To(HaveLen(4))
		Expect(reports[3].Status).To(Equal(selection.ItemDuplicate))
		Expect(reports[3].Valid()).To(BeTrue())
	})

	It("reports invalid items without stopping the rest", func() {
		reports := picker.Add("7, x ,2")
		Expect(reports).To(HaveLen(3))
		Expect(reports[0].Status).To(Equal(selection.ItemOutOfRange))
		Expect(reports[0].Index).To(Equal(7))
		Expect(reports[1].Status).To(Equal(selection.ItemNotNumber))
		Expect(reports[1].Raw).To(Equal("x"))
		Expect(reports[2].Status).To(Equal(selection.ItemAdded))
		Expect(reports[2].Path).To(Equal("two"))
		Expect(picker.Indices()).To(Equal([]int{2}))
	})

	It("accumulates across several inputs", func() {
		picker.Add("2")
		picker.Add("0,2,4")
		Expect(picker.Indices()).To(Equal([]int{2, 4}))
	})

	It("recognizes the sentinel", func() {
		Expect(selection.IsDone(" Done ")).To(BeTrue())
		Expect(selection.IsDone("1,2")).To(BeFalse())
	})
})
