package help

const QuickstartYAML = `# blogkit Quick Start

commands:
  tools: "Scan posts for related-tool mentions and write a Markdown report"
  repair: "Rebuild malformed frontmatter blocks and add missing slugs"
  migrate: "Move flat posts into <year>/<MM>-<month>/<slug>.md"
  runs: "List recorded runs (runs show <id> for details)"

examples:
  related_tools: |
    blogkit tools
    blogkit tools --content-dir content/posts --output BLOG_RELATED_TOOLS.md --html

  custom_rules: |
    blogkit tools --rules rules.yaml --dedupe

  repair_preview: |
    blogkit repair --dry-run
    blogkit repair --content-dir content/articles

  migrate_preview: |
    blogkit migrate --dry-run
    blogkit migrate --source content/posts --dest content/articles --default-time 09:00:00+00:00

  history: |
    blogkit runs --limit 10
    blogkit runs show 3f2a

defaults:
  tools_content_dir: "content/posts"
  tools_output: "BLOG_RELATED_TOOLS.md"
  repair_content_dir: "content/articles"
  migrate_source: "content/posts"
  migrate_dest: "content/articles"
  migrate_backup: "<source>/backup"
  lastmod_time: "12:00:00+08:00"

rules_file:
  description: "YAML file overriding the enrichment tables; absent keys keep defaults"
  example: |
    functions:
      - keyword: json
        phrases: ["JSON formatting", "JSON validation"]
    categories:
      - category: text-processing
        keywords: [json, yaml, markdown]
    fallback_description: "developer utility"

content_tree:
  - "Hidden directories and backup/ are never scanned"
  - "Paths listed in <content-dir>/.blogignore (gitignore syntax) are skipped"

history:
  - "Runs are recorded in blogkit.db next to the binary (--db to override)"
  - "--no-history skips the database entirely"

error_behavior:
  - "Missing content directory: exit code 2 before any file is touched"
  - "Per-file errors: logged and the run continues"
  - "migrate never overwrites an existing target without --overwrite"
`
