package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"basegraph.app/releasenotes/internal/output"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Resolver", func() {
	var prompt *bytes.Buffer

	BeforeEach(func() {
		prompt = &bytes.Buffer{}
	})

	It("uses the configured path without prompting", func() {
		r := &output.Resolver{Configured: "notes.md", In: strings.NewReader("other.md\n"), Prompt: prompt, Interactive: true}

		dest, err := r.Resolve()

		Expect(err).NotTo(HaveOccurred())
		Expect(dest.Path).To(Equal("notes.md"))
		Expect(prompt.Len()).To(Equal(0))
	})

	It("treats '-' as stdout", func() {
		r := &output.Resolver{Configured: "-", Interactive: true}

		dest, err := r.Resolve()

		Expect(err).NotTo(HaveOccurred())
		Expect(dest.IsStdout()).To(BeTrue())
		Expect(dest.String()).To(Equal("stdout"))
	})

	It("asks for a filename on a terminal", func() {
		r := &output.Resolver{In: strings.NewReader("  release.md \n"), Prompt: prompt, Interactive: true}

		dest, err := r.Resolve()

		Expect(err).NotTo(HaveOccurred())
		Expect(dest.Path).To(Equal("release.md"))
		Expect(prompt.String()).To(Equal("Output filename (press Enter for stdout): "))
	})

	It("falls back to stdout when the answer is empty", func() {
		r := &output.Resolver{In: strings.NewReader("\n"), Prompt: prompt, Interactive: true}

		dest, err := r.Resolve()

		Expect(err).NotTo(HaveOccurred())
		Expect(dest.IsStdout()).To(BeTrue())
	})

	It("accepts an answer without a trailing newline", func() {
		r := &output.Resolver{In: strings.NewReader("out.md"), Interactive: true}

		dest, err := r.Resolve()

		Expect(err).NotTo(HaveOccurred())
		Expect(dest.Path).To(Equal("out.md"))
	})

	It("never prompts when not interactive", func() {
		r := &output.Resolver{In: strings.NewReader("x.md\n"), Prompt: prompt, Interactive: false}

		dest, err := r.Resolve()

		Expect(err).NotTo(HaveOccurred())
		Expect(dest.IsStdout()).To(BeTrue())
		Expect(prompt.Len()).To(Equal(0))
	})
})

var _ = Describe("Write", func() {
	It("writes the document to a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "notes.md")

		Expect(output.Write(output.Destination{Path: path}, "# Release Notes\n", nil)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("# Release Notes\n"))
	})

	It("prints to stdout with a trailing newline", func() {
		var stdout bytes.Buffer

		Expect(output.Write(output.Destination{}, "No closed issues found between 2024-01-01 and 2024-01-31", &stdout)).To(Succeed())

		Expect(stdout.String()).To(Equal("No closed issues found between 2024-01-01 and 2024-01-31\n"))
	})

	It("returns filesystem errors unchanged", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "notes.md")

		err := output.Write(output.Destination{Path: path}, "x", nil)

		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})
