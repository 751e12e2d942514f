// SPDX-License-Identifier: MIT
package termstyle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("color support", func() {
	It("is disabled by NO_COLOR even when empty", func() {
		GinkgoT().Setenv("NO_COLOR", "")
		GinkgoT().Setenv("TERM", "xterm-256color")
		Expect(HasColorSupport()).To(BeFalse())
	})

	It("is disabled for dumb terminals", func() {
		GinkgoT().Setenv("TERM", "dumb")
		Expect(HasColorSupport()).To(BeFalse())
	})

	It("renders a banner containing the title", func() {
		DisableColor()
		out := Banner("Git Buddy")
		Expect(out).To(ContainSubstring("Git Buddy"))
		Expect(out).To(ContainSubstring("╭"))
	})
})
