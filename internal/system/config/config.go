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

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// MailExtractConfig describes the external command used to turn a
// mail-item file (.msg/.oft) into plain text. The command is invoked as
// <command> <args...> <file> and must print the extracted text on stdout.
type MailExtractConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// SeedConfig points at the bundled built-in template definition documents.
type SeedConfig struct {
	TemplateDir string `yaml:"template_dir"`
}

type Config struct {
	Addr        AddrConfig        `yaml:"addr"`
	Log         LogConfig         `yaml:"log"`
	DataSource  DataSourceConfig  `yaml:"datasource"`
	MailExtract MailExtractConfig `yaml:"mail_extract"`
	Seed        SeedConfig        `yaml:"seed"`
}
