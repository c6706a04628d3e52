// 读取配置输入：文件或Base64编码的数据
package input

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
)

var (
	ErrNoInput = errors.New("config file or config data must be specified")
)

// Read 读取原始配置数据
// 功能：优先从文件读取，未指定文件时解码Base64数据
// 参数：path-配置文件路径，data-Base64编码的配置数据
// 返回：原始YAML数据，错误信息
func Read(path, data string) ([]byte, error) {
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config file load err: %w", err)
		}
		log.Infof("load config from %s", path)
		return file, nil
	}
	if data != "" {
		file, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("config data load err: %w", err)
		}
		log.Infof("load config from base64 data (%d bytes)", len(file))
		return file, nil
	}
	return nil, ErrNoInput
}

// Load 读取并解析配置
func Load(path, data string) (*config.RuntimeConfig, error) {
	file, err := Read(path, data)
	if err != nil {
		return nil, err
	}
	return config.Load(file)
}
