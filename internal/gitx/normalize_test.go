// SPDX-License-Identifier: MIT
package gitx_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skaphos/gitbuddy/internal/gitx"
)

var _ = Describe("ValidateURL", func() {
	DescribeTable("normalizes accepted forms",
		func(input, expected string) {
			got, err := gitx.ValidateURL(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(expected))
		},
		Entry("owner/repo", "octo/cat", "https://github.com/octo/cat.git"),
		Entry("owner/repo.git", "octo/cat.git", "https://github.com/octo/cat.git"),
		Entry("HTTPS without .git", "https://github.com/octo/cat", "https://github.com/octo/cat.git"),
		Entry("HTTPS with .git", "https://github.com/octo/cat.git", "https://github.com/octo/cat.git"),
		Entry("HTTPS with trailing slash", "https://github.com/octo/cat/", "https://github.com/octo/cat.git"),
		Entry("HTTPS with .git and trailing slash", "https://github.com/octo/cat.git/", "https://github.com/octo/cat.git"),
		Entry("SSH shorthand", "git@github.com:octo/cat.git", "https://github.com/octo/cat.git"),
		Entry("SSH shorthand without user", "github.com:octo/cat.git", "https://github.com/octo/cat.git"),
		Entry("other host", "https://gitlab.com/octo/cat", "https://gitlab.com/octo/cat.git"),
		Entry("host is lowercased", "git@GitHub.COM:Octo/Cat.git", "https://github.com/Octo/Cat.git"),
		Entry("surrounding whitespace", "  octo/cat \n", "https://github.com/octo/cat.git"),
	)

	It("maps every form of the same repository to one URL", func() {
		inputs := []string{"octo/cat", "https://github.com/octo/cat", "git@github.com:octo/cat.git"}
		for _, in := range inputs {
			got, err := gitx.ValidateURL(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("https://github.com/octo/cat.git"))
			again, err := gitx.ValidateURL(got)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(got))
		}
	})

	DescribeTable("rejects malformed input",
		func(input string) {
			_, err := gitx.ValidateURL(input)
			Expect(err).To(MatchError(gitx.ErrInvalidFormat))
			Expect(err.Error()).To(ContainSubstring(gitx.FormatHint))
		},
		Entry("empty", ""),
		Entry("blank", "   "),
		Entry("single segment", "cat"),
		Entry("too deep", "https://github.com/octo/cat/tree/main"),
		Entry("ssh without .git", "git@github.com:octo/cat"),
		Entry("http scheme", "http://github.com/octo/cat"),
		Entry("only suffix", "octo/.git"),
		Entry("spaces inside", "octo cat/repo"),
	)
})

var _ = Describe("ParseRemoteTarget", func() {
	It("splits the parts and applies the default host", func() {
		target, err := gitx.ParseRemoteTarget("alice/project", "git.example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(target.Host).To(Equal("git.example.com"))
		Expect(target.Owner).To(Equal("alice"))
		Expect(target.Repo).To(Equal("project"))
		Expect(target.URL).To(Equal("https://git.example.com/alice/project.git"))
	})

	It("uses github.com when no default host is given", func() {
		target, err := gitx.ParseRemoteTarget("alice/project", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(target.Host).To(Equal("github.com"))
	})
})
