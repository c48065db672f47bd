package main_test

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/containers/docker-cp/pkg/bindings/bindingstest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gexec"
)

const versionText = "1.0.3\n"

var _ = Describe("docker-cp", func() {
	var (
		dockerCpTest *DockerCpTest
		ctr          *bindingstest.FakeContainer
		server       *bindingstest.Server
	)

	BeforeEach(func() {
		dockerCpTest = NewDockerCpTest()
		ctr = bindingstest.NewFakeContainer("f00dcafe", "mycontainer")
		ctr.AddFile("/etc/version", []byte(versionText), 0o644, 1561398395)
		server = bindingstest.NewServer(bindingstest.NewFakeClient(ctr))
	})

	AfterEach(func() {
		server.Close()
	})

	It("copies a file out of a container", func() {
		session := dockerCpTest.Run("--host", server.URI(), "mycontainer:/etc/version", ".")
		Expect(session).Should(Exit(0))

		data, err := os.ReadFile(filepath.Join(dockerCpTest.TempDir, "version"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal(versionText))
	})

	It("writes into the parent directory of a file target", func() {
		session := dockerCpTest.Run("--host", server.URI(), "--buffer-length", "2", "f00dcafe:/etc/version", "renamed")
		Expect(session).Should(Exit(0))

		_, err := os.Stat(filepath.Join(dockerCpTest.TempDir, "version"))
		Expect(err).ToNot(HaveOccurred())
		_, err = os.Stat(filepath.Join(dockerCpTest.TempDir, "renamed"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("copies a file into a container", func() {
		src := filepath.Join(dockerCpTest.TempDir, "notes.txt")
		Expect(os.WriteFile(src, []byte("remember the milk\n"), 0o640)).To(Succeed())

		session := dockerCpTest.Run("-H", server.URI(), "notes.txt", "mycontainer:/tmp")
		Expect(session).Should(Exit(0))

		f, ok := ctr.File("/tmp/notes.txt")
		Expect(ok).To(BeTrue())
		Expect(string(f.Data)).To(Equal("remember the milk\n"))
		Expect(f.Entry.Mode).To(Equal(uint32(0o640)))
	})

	It("reads the engine host and buffer length from the configuration file", func() {
		conf := filepath.Join(dockerCpTest.TempDir, "docker-cp.conf")
		content := fmt.Sprintf("[engine]\nhost = %q\n\n[copy]\nbuffer_length = \"4KiB\"\n", server.URI())
		Expect(os.WriteFile(conf, []byte(content), 0o600)).To(Succeed())

		session := dockerCpTest.Run("--config", conf, "mycontainer:/etc/version", ".")
		Expect(session).Should(Exit(0))
		_, err := os.Stat(filepath.Join(dockerCpTest.TempDir, "version"))
		Expect(err).ToNot(HaveOccurred())
	})

	It("honors CONTAINER_HOST", func() {
		dockerCpTest.Env = append(dockerCpTest.Env, "CONTAINER_HOST="+server.URI())
		session := dockerCpTest.Run("mycontainer:/etc/version", ".")
		Expect(session).Should(Exit(0))
	})

	DescribeTable("rejects invalid invocations",
		func(expected string, args ...string) {
			session := dockerCpTest.Run(append([]string{"--host", server.URI()}, args...)...)
			Expect(session).Should(Exit(125))
			Expect(ErrorToString(session)).To(Equal("Error: " + expected + "\n"))
			Expect(ctr.Fetches).To(BeEmpty())
			Expect(ctr.Puts).To(BeEmpty())
		},
		Entry("between containers", "Copying between containers is not supported", "a:/x", "b:/y"),
		Entry("without a container", "At least one container must be specified", "relfile", "alsorel"),
		Entry("with one argument", "you must provide a source path and a destination path", "mycontainer:/etc/version"),
		Entry("with a fractional buffer length", "Buffer length must be an integer greater than 0", "--buffer-length", "4.5", "mycontainer:/etc/version", "."),
		Entry("with an empty buffer length", "Buffer length must be an integer greater than 0", "--buffer-length=", "mycontainer:/etc/version", "."),
		Entry("with a zero buffer length", "Buffer length must be an integer greater than 0", "--buffer-length", "0", "mycontainer:/etc/version", "."),
		Entry("with a missing output directory", "Invalid output path", "mycontainer:/etc/version", "/foo_/bar_"),
		Entry("with a missing source file", "Invalid source file", "does-not-exist", "mycontainer:/tmp"),
	)

	It("reports a missing container", func() {
		session := dockerCpTest.Run("--host", server.URI(), "ghost:/etc/version", ".")
		Expect(session).Should(Exit(125))
		Expect(ErrorToString(session)).To(ContainSubstring("No such container: ghost"))
	})

	It("reports an unreachable engine", func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		addr := l.Addr().String()
		Expect(l.Close()).To(Succeed())

		session := dockerCpTest.Run("--host", "tcp://"+addr, "mycontainer:/etc/version", ".")
		Expect(session).Should(Exit(125))
		Expect(ErrorToString(session)).To(Equal("Error: Could not connect to Docker\n"))
	})

	It("rejects an unknown log level", func() {
		session := dockerCpTest.Run("--log-level", "chatty", "mycontainer:/etc/version", ".")
		Expect(session).Should(Exit(125))
		Expect(ErrorToString(session)).To(ContainSubstring(`log level "chatty" is not supported`))
	})

	It("prints its version", func() {
		session := dockerCpTest.Run("--version")
		Expect(session).Should(Exit(0))
		Expect(string(session.Out.Contents())).To(Equal("docker-cp version 0.1.0\n"))
	})
})
