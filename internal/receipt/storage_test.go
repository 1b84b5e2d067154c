package receipt

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalImageStore", func() {
	var (
		tmpDir string
		store  ImageStore
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		store, err = NewLocalImageStore(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		var (
			name string
			ref  string
			err  error
		)

		BeforeEach(func() {
			name = "test.jpg"
		})

		JustBeforeEach(func() {
			ref, err = store.Save(name, []byte("test file content"))
		})

		It("should return the name as reference", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(ref).To(Equal("test.jpg"))
		})

		It("should save the file to disk", func() {
			Expect(filepath.Join(tmpDir, "test.jpg")).To(BeAnExistingFile())
		})

		When("the name contains directories", func() {
			BeforeEach(func() {
				name = "../../escape.jpg"
			})

			It("should keep the file inside the storage directory", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(ref).To(Equal("escape.jpg"))
				Expect(filepath.Join(tmpDir, "escape.jpg")).To(BeAnExistingFile())
			})
		})
	})

	Describe("Get", func() {
		When("file exists", func() {
			BeforeEach(func() {
				_, err := store.Save("test.jpg", []byte("test file content"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the file data", func() {
				data, err := store.Get("test.jpg")
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("test file content"))
			})
		})

		When("file does not exist", func() {
			It("returns the error", func() {
				_, err := store.Get("nonexistent.jpg")
				Expect(err).To(MatchError(ContainSubstring("reading file")))
			})
		})
	})

	Describe("Delete", func() {
		When("file exists", func() {
			BeforeEach(func() {
				_, err := store.Save("test.jpg", []byte("test content"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the file from disk", func() {
				Expect(store.Delete("test.jpg")).To(Succeed())
				Expect(filepath.Join(tmpDir, "test.jpg")).NotTo(BeAnExistingFile())
			})
		})

		When("file does not exist", func() {
			It("returns the error", func() {
				err := store.Delete("nonexistent.jpg")
				Expect(err).To(MatchError(ContainSubstring("deleting file")))
			})
		})
	})

	Describe("NewLocalImageStore", func() {
		When("directory does not exist", func() {
			It("should create the directory", func() {
				path := filepath.Join(GinkgoT().TempDir(), "images")
				_, err := NewLocalImageStore(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(path).To(BeADirectory())
			})
		})
	})
})
