// Package modelzoo fetches pretrained ONNX models from the public ONNX
// model zoo. It covers the image-classification family and caches each
// downloaded model on disk, so examples and tests can pull a real model
// without vendoring multi-megabyte files.
package modelzoo

import (
	"sort"
)

// Model is one downloadable pretrained model.
type Model struct {
	// Name is the stable catalog key, for example "resnet50-v2".
	Name string
	// Filename is the on-disk name of the fetched model file.
	Filename string
	// URL is the upstream location in the ONNX model zoo.
	URL string
}

const zooBase = "https://github.com/onnx/models/raw/master/vision/classification"

var catalog = map[string]Model{}

func register(name, path string) {
	filename := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			filename = path[i+1:]
			break
		}
	}
	catalog[name] = Model{Name: name, Filename: filename, URL: zooBase + "/" + path}
}

func init() {
	register("mnist", "mnist/model/mnist-8.onnx")
	register("mobilenet", "mobilenet/model/mobilenetv2-7.onnx")
	register("squeezenet", "squeezenet/model/squeezenet1.0-9.onnx")
	register("alexnet", "alexnet/model/bvlcalexnet-9.onnx")
	register("googlenet", "inception_and_googlenet/googlenet/model/googlenet-9.onnx")
	register("caffenet", "caffenet/model/caffenet-9.onnx")
	register("inception-v1", "inception_and_googlenet/inception_v1/model/inception-v1-9.onnx")
	register("inception-v2", "inception_and_googlenet/inception_v2/model/inception-v2-9.onnx")

	for _, depth := range []string{"18", "34", "50", "101", "152"} {
		register("resnet"+depth+"-v1", "resnet/model/resnet"+depth+"-v1-7.onnx")
		register("resnet"+depth+"-v2", "resnet/model/resnet"+depth+"-v2-7.onnx")
	}

	register("vgg16", "vgg/model/vgg16-7.onnx")
	register("vgg16-bn", "vgg/model/vgg16-bn-7.onnx")
	register("vgg19", "vgg/model/vgg19-7.onnx")
	register("vgg19-bn", "vgg/model/vgg19-bn-7.onnx")
}

// Lookup returns the catalog entry for a model name.
func Lookup(name string) (Model, bool) {
	model, ok := catalog[name]
	return model, ok
}

// Models returns all catalog entries sorted by name.
func Models() []Model {
	models := make([]Model, 0, len(catalog))
	for _, model := range catalog {
		models = append(models, model)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models
}
