package receipt

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		baseDir string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		baseDir = filepath.Join(tmpDir, "receipts")
		storage = NewLocalStorage(baseDir)
	})

	Describe("NewLocalStorage", func() {
		It("should not create the directory", func() {
			Expect(baseDir).NotTo(BeADirectory())
		})
	})

	Describe("Save", func() {
		var (
			filename  string
			data      []byte
			savedPath string
			err       error
		)

		BeforeEach(func() {
			filename = "Receipt_01-15-2024_10-00-00.txt"
			data = []byte("TOTAL: ₱50.00")
		})

		JustBeforeEach(func() {
			savedPath, err = storage.Save(filename, data)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the path inside the directory", func() {
				Expect(savedPath).To(Equal(filepath.Join(baseDir, filename)))
			})

			It("should create the directory on demand", func() {
				Expect(baseDir).To(BeADirectory())
			})

			It("should save the file as UTF-8 text", func() {
				saved, readErr := os.ReadFile(savedPath)
				Expect(readErr).NotTo(HaveOccurred())
				Expect(string(saved)).To(Equal("TOTAL: ₱50.00"))
			})
		})

		When("the directory cannot be created", func() {
			BeforeEach(func() {
				Expect(os.WriteFile(baseDir, []byte("not a directory"), 0644)).To(Succeed())
			})

			It("returns the error", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("creating storage directory"))
			})
		})
	})

	Describe("Get", func() {
		var (
			name string
			data []byte
			err  error
		)

		JustBeforeEach(func() {
			data, err = storage.Get(name)
		})

		When("file exists", func() {
			BeforeEach(func() {
				name = "Receipt_01-15-2024_10-00-00.txt"
				_, saveErr := storage.Save(name, []byte("receipt body"))
				Expect(saveErr).NotTo(HaveOccurred())
			})

			It("should return the file data", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("receipt body"))
			})

			It("should accept the listed path as well as the name", func() {
				byPath, getErr := storage.Get(filepath.Join(baseDir, name))
				Expect(getErr).NotTo(HaveOccurred())
				Expect(string(byPath)).To(Equal("receipt body"))
			})
		})

		When("file does not exist", func() {
			BeforeEach(func() {
				name = "Receipt_missing.txt"
			})

			It("returns the error", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("reading file"))
			})
		})
	})

	Describe("List", func() {
		var (
			paths []string
			err   error
		)

		JustBeforeEach(func() {
			paths, err = storage.List()
		})

		When("the directory does not exist", func() {
			It("should return an empty list", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(paths).To(BeEmpty())
			})
		})

		When("receipts and other files exist", func() {
			BeforeEach(func() {
				for _, name := range []string{
					"Receipt_01-15-2024_10-00-00.txt",
					"Receipt_01-15-2024_11-30-00.txt",
					"daily_summary_2024-01-15.txt",
					"Receipt_notes.md",
				} {
					_, saveErr := storage.Save(name, []byte("x"))
					Expect(saveErr).NotTo(HaveOccurred())
				}
			})

			It("should list only receipts, newest name first", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(paths).To(Equal([]string{
					filepath.Join(baseDir, "Receipt_01-15-2024_11-30-00.txt"),
					filepath.Join(baseDir, "Receipt_01-15-2024_10-00-00.txt"),
				}))
			})
		})
	})
})
