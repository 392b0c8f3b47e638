// 7 Oct 2026
/*

fqlen reads a fastq file and writes out the records whose sequence length is strictly between two limits.

Usage:
 fqlen -i input.fastq -o output.fastq -l lower -u upper [options]

Flags:
  -i, --input filename
    	Input file. The name must end in .fastq, .fq, .fastq.gz or .fq.gz.
    	Anything else is refused. Names ending in .gz are decompressed.
  -o, --output filename
    	Output file. If the name ends in .gz, it is written compressed.
  -l, --lower N
    	Keep sequences longer than N.
  -u, --upper N
    	Keep sequences shorter than N.
  -z, --gzip
    	Compress the output. If the output name does not end in .gz,
    	.gz is added to it and there is a warning.
  -v, --verbose
    	At the end, say how many sequences were read and kept.
      --progress
    	Show a progress bar. It measures the input file, so for
    	compressed input it counts compressed bytes.
      --version
    	Print the version and stop.

Both limits are exclusive. With -l 100 -u 200, a sequence of length 100 is dropped, as is one of length 200. If the lower limit is not below the upper limit, nothing can be kept. This is not treated as an error. You get a warning and an empty output file.

Records are written exactly as they were read, so the identifier line keeps any description after the name and the separator line comes out as "+".

If the input is broken, we stop at the first bad record and say which line it was on. Whatever was written before then is left in a properly closed output file.

Everything except the data goes to stderr. Exit status is 0 on success, 1 for a file or format problem and 2 for a bad command line.

*/
package main
