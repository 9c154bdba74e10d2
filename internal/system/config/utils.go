/*
 * Copyright (c) 2025, CRMStack (https://github.com/crmstack).
 *
 * CRMStack licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import (
	"gopkg.in/yaml.v2"
	"os"
	"path"
)

// LoadConfig reads the deployment configuration from cdsHome, expanding
// environment variable references before unmarshalling.
func LoadConfig(cdsHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(cdsHome, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OverrideCDSRuntime replaces the runtime configuration. Used by tests.
func OverrideCDSRuntime(conf Config) {
	runtimeConfig = &CDSRuntime{
		Config: conf,
	}
}
