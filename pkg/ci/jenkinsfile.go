package ci

import (
	"fmt"
	"strings"
)

const JenkinsfileFile = "Jenkinsfile"

const (
	jenkinsCheckout = `    stage('checkout git') {
        steps {
            checkout scm
            // remove untracked files (*.pyc for example)
            sh 'git clean -fxd'
        }
    }
`
	jenkinsRuffInstall = `    stage('install  ruff') {
        steps {
            sh 'curl -L --silent https://github.com/astral-sh/ruff/releases/download/0.13.1/ruff-x86_64-unknown-linux-gnu.tar.gz --output - | tar -xzv'
            sh 'cp ruff-x86_64-unknown-linux-gnu/ruff .'
        }
    }
`
	jenkinsShellcheck = `            stage ('shellcheck') {
                steps {
                    sh 'curl -L --silent https://github.com/koalaman/shellcheck/releases/download/latest/shellcheck-latest.linux.x86_64.tar.xz --output - | tar -xJv'
                    sh 'cp shellcheck-latest/shellcheck .'
                    sh 'rm -r shellcheck-latest'
                    sh './shellcheck --version'
                    sh './shellcheck bin/*.sh'
                }
            }
`
	jenkinsRuffFormat = `            stage('ruff format') {
                steps {
                    sh './ruff format --check .'
                }
            }
`
	jenkinsRuffCheck = `            stage('ruff check') {
                steps {
                    sh './ruff check .'
                }
            }
`
	jenkinsJira = `            stage('PR title JIRA link') {
                steps {
                    if (env.CHANGE_ID) {
                        if (env.CHANGE_TITLE =~ /\s+\(?HPC-\d+\)?/) {
                            echo "title ${env.CHANGE_TITLE} seems to contain JIRA ticket number."
                        } else {
                            echo "ERROR: title ${env.CHANGE_TITLE} does not end in 'HPC-number'."
                            error("malformed PR title ${env.CHANGE_TITLE}.")
                        }
                    }
                }
            }
`
	jenkinsToxRun = `export PATH=$PWD/.vsc-tox/bin:$PATH && export PYTHONPATH=$PWD/.vsc-tox/lib/python$(python3 -c "import sys; print(\\"%s.%s\\" % sys.version_info[:2])")/site-packages:$PYTHONPATH && tox -v -c tox.ini`
)

// jenkinsSh renders a pipeline `sh` step at the nesting depth of the parallel test stages.
func jenkinsSh(cmd string) string {
	const indent = "                    "
	if strings.Contains(cmd, "'") {
		return fmt.Sprintf(`%ssh """%s"""`, indent, cmd) + "\n"
	}
	return fmt.Sprintf("%ssh '%s'", indent, cmd) + "\n"
}

// Jenkinsfile renders the declarative Jenkins pipeline.
func Jenkinsfile(cfg Config) string {
	var buf strings.Builder

	buf.WriteString("// Jenkinsfile: scripted Jenkins pipefile\n")
	buf.WriteString("// " + generatedBy + "\n")
	buf.WriteString("// DO NOT EDIT MANUALLY\n")
	buf.WriteString("\npipeline {\nagent any\nstages {\n")

	buf.WriteString(jenkinsCheckout)
	if cfg.RunRuffCheck || cfg.RunRuffFormatCheck {
		buf.WriteString(jenkinsRuffInstall)
	}

	buf.WriteString("    stage('test pipeline') {\n        parallel {\n")
	if cfg.RunShellcheck {
		buf.WriteString(jenkinsShellcheck)
	}
	if cfg.RunRuffFormatCheck {
		buf.WriteString(jenkinsRuffFormat)
	}
	if cfg.RunRuffCheck {
		buf.WriteString(jenkinsRuffCheck)
	}

	buf.WriteString("            stage('test') {\n                steps {\n")
	switch {
	case cfg.EasyInstallTox:
		buf.WriteString(jenkinsSh("python -m easy_install -U --user tox"))
	case cfg.HomeInstall:
		buf.WriteString(jenkinsSh("export PREFIX=$PWD && cd $HOME && pip3 install --ignore-installed --prefix $PREFIX/.vsc-tox tox"))
	default:
		buf.WriteString(jenkinsSh("pip3 install --ignore-installed --prefix $PWD/.vsc-tox tox"))
	}
	buf.WriteString(jenkinsSh(jenkinsToxRun))
	buf.WriteString(jenkinsSh("rm -r $PWD/.vsc-tox"))
	for _, cmd := range cfg.AdditionalTestCommands {
		buf.WriteString(jenkinsSh(cmd))
	}
	buf.WriteString("                }\n            }\n")

	if cfg.JiraIssueIDInPRTitle {
		buf.WriteString(jenkinsJira)
	}

	buf.WriteString("        }\n    }\n}}\n")
	return buf.String()
}
