// Package docker provides the Docker SDK client and the image build and
// test-run operations for rendered recipes.
package docker
